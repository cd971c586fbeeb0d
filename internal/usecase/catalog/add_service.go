package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/giovanabeautify/salon-scheduler/internal/audit"
	domain "github.com/giovanabeautify/salon-scheduler/internal/domain/appointment"
	"github.com/giovanabeautify/salon-scheduler/internal/httperr"
	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

type AddServiceInput struct {
	Name        string
	Price       string
	Description string

	CallerID      string
	CallerIsAdmin bool
}

type AddService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddService(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddService {
	return &AddService{
		repo:  repo,
		audit: audit,
	}
}

// Execute cadastra um serviço novo no catálogo. O preço chega como texto
// do formulário e precisa ser um número não negativo.
func (uc *AddService) Execute(
	ctx context.Context,
	in AddServiceInput,
) (*models.Service, error) {

	if !in.CallerIsAdmin {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)

	if name == "" || in.Price == "" || description == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingField)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || price < 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidPrice)
	}

	svc := &models.Service{
		Name:        name,
		Price:       price,
		Description: description,
	}

	if err := uc.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.CallerID,
		Action:   "service_added",
		Entity:   "service",
		EntityID: svc.ID,
	})

	return svc, nil
}
