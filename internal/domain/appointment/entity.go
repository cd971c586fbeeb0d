package appointment

import (
	"time"

	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel marca o agendamento como cancelado. Cancelar um agendamento já
// cancelado é sucesso sem efeito (o segundo clique do cliente não pode
// virar erro); devolve changed=false nesse caso.
func Cancel(ap *models.Appointment, now time.Time) (changed bool) {
	if Status(ap.Status) == StatusCancelled {
		return false
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return true
}

// TotalPrice soma os preços congelados nos snapshots. O total nunca é
// editável de forma independente; é sempre derivado daqui.
func TotalPrice(services models.ServiceSnapshots) float64 {
	var total float64
	for _, s := range services {
		total += s.Price
	}
	return total
}

// SpentAmount é o valor que conta no histórico de gastos do cliente;
// agendamentos antigos de serviço único guardavam só Price.
func SpentAmount(ap *models.Appointment) float64 {
	if ap.TotalPrice != 0 {
		return ap.TotalPrice
	}
	return ap.Price
}
