package models

// APIResponse estructura estándar para respuestas de API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TopicsResponse temas cargados y cuántas preguntas tiene cada uno
type TopicsResponse struct {
	Topics []SheetStat `json:"topics"`
	Total  int         `json:"total"`
}

// MillionaireQuestionsResponse banco de preguntas del millonario
type MillionaireQuestionsResponse struct {
	Questions []MillionaireQuestion `json:"questions,omitempty"`
	Count     int                   `json:"count"`
}

// TopicsRequest temas elegidos por el jugador
type TopicsRequest struct {
	Topics []string `json:"topics"`
}

// URLRequest descarga de una hoja de cálculo remota
type URLRequest struct {
	URL string `json:"url"`
}

// AnswerRequest respuesta elegida en la escalera (índice de presentación)
type AnswerRequest struct {
	Index int `json:"index"`
}

// LifelineRequest comodín que se quiere usar
type LifelineRequest struct {
	ID LifelineID `json:"id"`
}

// ElapsedRequest segundos transcurridos desde la última acción
type ElapsedRequest struct {
	Elapsed float64 `json:"elapsed"`
}

// ShootRequest disparo a un asteroide
type ShootRequest struct {
	Target string `json:"target"`
}

// HealthStatus estado del servicio y de los datos guardados en Redis
type HealthStatus struct {
	Status    string            `json:"status"`
	Questions int               `json:"questions"`
	ExpiresIn int               `json:"expiresIn"` // segundos hasta que caducan las preguntas
	Redis     map[string]string `json:"redis"`
}
