package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config opciones del servidor; cada flag se puede dar con QUAQA_<FLAG>
type Config struct {
	bind           string
	port           int
	redisAddr      string
	redisPassword  string
	redisDB        int
	questionsFile  string
	questionsURL   string
	dataTTL        time.Duration
	sessionTimeout time.Duration
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("puerto inválido (debe estar entre 1 y 65535): %d", c.port)
	}
	if c.redisAddr == "" {
		return errors.New("falta --redis-addr")
	}
	if c.redisDB < 0 {
		return fmt.Errorf("base de datos de Redis inválida: %d", c.redisDB)
	}
	if c.dataTTL <= 0 {
		return fmt.Errorf("--data-ttl debe ser positivo: %s", c.dataTTL)
	}
	if c.sessionTimeout <= 0 {
		return fmt.Errorf("--session-timeout debe ser positivo: %s", c.sessionTimeout)
	}
	if c.questionsFile != "" && c.questionsURL != "" {
		return errors.New("usa --questions-file o --questions-url, no ambos")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("QUAQA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "quaqa",
		Short:         "Servidor de trivia: práctica por temas, millonario y asteroides.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return Serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: QUAQA_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: QUAQA_PORT)")
	fs.StringVar(&cfg.redisAddr, "redis-addr", "localhost:6379", "redis address (env: QUAQA_REDIS_ADDR)")
	fs.StringVar(&cfg.redisPassword, "redis-password", "", "redis password (env: QUAQA_REDIS_PASSWORD)")
	fs.IntVar(&cfg.redisDB, "redis-db", 0, "redis database number (env: QUAQA_REDIS_DB)")
	fs.StringVarP(&cfg.questionsFile, "questions-file", "f", "", "xlsx file loaded at startup when redis is empty (env: QUAQA_QUESTIONS_FILE)")
	fs.StringVarP(&cfg.questionsURL, "questions-url", "u", "", "xlsx url loaded at startup when redis is empty (env: QUAQA_QUESTIONS_URL)")
	fs.DurationVar(&cfg.dataTTL, "data-ttl", 7*24*time.Hour, "how long uploaded questions are kept (env: QUAQA_DATA_TTL)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle game sessions are ended (env: QUAQA_SESSION_TIMEOUT)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: QUAQA_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: QUAQA_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("quaqa v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
