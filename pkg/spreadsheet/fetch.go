package spreadsheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

const fetchTimeout = 30 * time.Second

// FetchURL descarga un libro y lo lee en formato de temas
func FetchURL(url string) (Result, error) {
	body, err := download(url)
	if err != nil {
		return Result{}, err
	}
	return LoadTopics(bytes.NewReader(body))
}

func download(url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := fasthttp.DoTimeout(req, resp, fetchTimeout); err != nil {
		return nil, fmt.Errorf("error descargando %s: %w", url, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("error descargando %s: status %d", url, resp.StatusCode())
	}

	return append([]byte(nil), resp.Body()...), nil
}
