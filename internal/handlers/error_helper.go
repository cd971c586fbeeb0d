package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/giovanabeautify/salon-scheduler/internal/httperr"
)

// respondBusiness traduz os códigos de negócio em respostas HTTP com
// mensagem legível. Erros de entrada pedem correção; store_unavailable
// pede nova tentativa.
func respondBusiness(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return
	}

	switch code {
	case httperr.CodeMissingField:
		httperr.BadRequest(c, code, "Por favor, preencha o nome do cliente, selecione ao menos um serviço, a data, a hora e o método de pagamento.")
	case httperr.CodeUnknownService:
		httperr.BadRequest(c, code, "Um dos serviços selecionados não existe mais. Atualize a página e tente novamente.")
	case httperr.CodeInvalidPrice:
		httperr.BadRequest(c, code, "Preço deve ser um número válido.")
	case httperr.CodeSlotTaken:
		httperr.Conflict(c, code, "Este horário já está preenchido. Por favor, escolha outro.")
	case httperr.CodePaymentConfig:
		httperr.BadRequest(c, code, "Chave Pix não configurada. Por favor, contate a Giovana.")
	case httperr.CodeUnauthorized:
		httperr.Forbidden(c, code, "Você não tem permissão para esta operação.")
	case httperr.CodeNotFound:
		httperr.NotFound(c, code, "Agendamento não encontrado.")
	case httperr.CodeStoreUnavailable:
		httperr.Write(c, 503, code, "Serviço temporariamente indisponível. Tente novamente em instantes.")
	default:
		httperr.Internal(c, code, "Erro interno. Tente novamente.")
	}
}
