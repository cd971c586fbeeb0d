package logging

import (
	"os"

	"go.uber.org/zap"
)

// Log é o logger global da API. Começa como no-op para que testes de
// pacote não precisem inicializar nada.
var Log *zap.Logger = zap.NewNop()

// Init configura o logger pelo ambiente: desenvolvimento imprime
// colorido e legível, produção emite JSON.
func Init() {
	var (
		logger *zap.Logger
		err    error
	)

	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return
	}

	Log = logger
}
