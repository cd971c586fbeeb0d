package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/giovanabeautify/salon-scheduler/internal/audit"
	"github.com/giovanabeautify/salon-scheduler/internal/catalog"
	dbpkg "github.com/giovanabeautify/salon-scheduler/internal/db"
	"github.com/giovanabeautify/salon-scheduler/internal/httperr"
	infraRepo "github.com/giovanabeautify/salon-scheduler/internal/infra/repository"
	"github.com/giovanabeautify/salon-scheduler/internal/models"
)

// ======================================================
// HELPERS
// ======================================================

type testEnv struct {
	db      *gorm.DB
	repo    *infraRepo.AppointmentGormRepository
	catalog *catalog.Catalog

	bookUC       *BookAppointment
	cancelUC     *CancelAppointment
	editUC       *EditAppointment
	listUC       *ListAppointments
	rescheduleUC *RescheduleRequest
	historyUC    *ClientHistory
}

func newTestEnv(t *testing.T, pixKey string) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	repo := infraRepo.NewAppointmentGormRepository(db)
	cat := catalog.New(repo)
	dispatcher := audit.NewDispatcher(audit.New(db))

	return &testEnv{
		db:      db,
		repo:    repo,
		catalog: cat,

		bookUC:       NewBookAppointment(repo, cat, pixKey, dispatcher),
		cancelUC:     NewCancelAppointment(repo, dispatcher),
		editUC:       NewEditAppointment(repo, cat, pixKey, dispatcher),
		listUC:       NewListAppointments(repo),
		rescheduleUC: NewRescheduleRequest(repo, dispatcher),
		historyUC:    NewClientHistory(repo),
	}
}

func validBooking(clientName, callerID string) BookAppointmentInput {
	return BookAppointmentInput{
		ClientName:    clientName,
		ServiceIDs:    []string{"henna"},
		Date:          "01/07/2025",
		Time:          "14:30",
		PaymentMethod: "Dinheiro",
		CallerID:      callerID,
	}
}

// ======================================================
// BOOK
// ======================================================

func TestBook_Success(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ap, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	assert.NotEmpty(t, ap.ID)
	assert.Equal(t, "Ana", ap.ClientName)
	assert.Equal(t, 60.00, ap.TotalPrice)
	assert.Equal(t, "confirmed", ap.Status)
	assert.Equal(t, "caller-ana", ap.OwnerID)
	require.Len(t, ap.Services, 1)
	assert.Equal(t, "henna", ap.Services[0].ID)
	assert.Equal(t, 60.00, ap.Services[0].Price)
}

func TestBook_MissingFields(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*BookAppointmentInput)
	}{
		{"sem nome", func(in *BookAppointmentInput) { in.ClientName = "" }},
		{"sem serviços", func(in *BookAppointmentInput) { in.ServiceIDs = nil }},
		{"sem data", func(in *BookAppointmentInput) { in.Date = "" }},
		{"sem hora", func(in *BookAppointmentInput) { in.Time = "" }},
		{"sem pagamento", func(in *BookAppointmentInput) { in.PaymentMethod = "" }},
		{"pagamento inválido", func(in *BookAppointmentInput) { in.PaymentMethod = "Boleto" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validBooking("Ana", "caller-ana")
			tc.mutate(&in)

			_, err := env.bookUC.Execute(ctx, in)
			assert.True(t, httperr.IsBusiness(err, httperr.CodeMissingField))
		})
	}
}

func TestBook_UnknownService(t *testing.T) {
	env := newTestEnv(t, "")

	in := validBooking("Ana", "caller-ana")
	in.ServiceIDs = []string{"henna", "nao-existe"}

	_, err := env.bookUC.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUnknownService))
}

func TestBook_PixRequiresConfiguredKey(t *testing.T) {
	env := newTestEnv(t, "")

	in := validBooking("Ana", "caller-ana")
	in.PaymentMethod = "Pix"

	_, err := env.bookUC.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodePaymentConfig))
}

func TestBook_PixStampsReference(t *testing.T) {
	env := newTestEnv(t, "giovana@pix.com")

	in := validBooking("Ana", "caller-ana")
	in.PaymentMethod = "Pix"

	ap, err := env.bookUC.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "giovana@pix.com", ap.PaymentReference)
}

func TestBook_MultipleServicesSumPrices(t *testing.T) {
	env := newTestEnv(t, "")

	in := validBooking("Ana", "caller-ana")
	in.ServiceIDs = []string{"design-personalizado", "tintura"}

	ap, err := env.bookUC.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 150.00, ap.TotalPrice)
	require.Len(t, ap.Services, 2)
}

func TestBook_SlotTaken(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	_, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	_, err = env.bookUC.Execute(ctx, validBooking("Bia", "caller-bia"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
}

func TestBook_DifferentSlotSameDay(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	_, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	in := validBooking("Bia", "caller-bia")
	in.Time = "15:00"

	_, err = env.bookUC.Execute(ctx, in)
	assert.NoError(t, err)
}

// O cenário completo: Ana agenda, Bia é recusada no mesmo horário, Ana
// cancela e o horário volta a aceitar a Bia.
func TestBook_CancelFreesSlot(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ana, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)
	assert.Equal(t, 60.00, ana.TotalPrice)

	_, err = env.bookUC.Execute(ctx, validBooking("Bia", "caller-bia"))
	require.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))

	_, err = env.cancelUC.Execute(ctx, ana.ID, "caller-ana", false)
	require.NoError(t, err)

	bia, err := env.bookUC.Execute(ctx, validBooking("Bia", "caller-bia"))
	require.NoError(t, err)
	assert.Equal(t, "confirmed", bia.Status)
}

// ======================================================
// CANCEL
// ======================================================

func TestCancel_OwnerCanCancel(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ap, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	cancelled, err := env.cancelUC.Execute(ctx, ap.ID, "caller-ana", false)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
}

func TestCancel_AdminCanCancelAny(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ap, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	cancelled, err := env.cancelUC.Execute(ctx, ap.ID, "giovana@studio.com", true)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
}

func TestCancel_StrangerForbidden(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ap, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	_, err = env.cancelUC.Execute(ctx, ap.ID, "caller-bia", false)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUnauthorized))
}

func TestCancel_TwiceIsIdempotent(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ap, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	first, err := env.cancelUC.Execute(ctx, ap.ID, "caller-ana", false)
	require.NoError(t, err)

	second, err := env.cancelUC.Execute(ctx, ap.ID, "caller-ana", false)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", second.Status)
	assert.Equal(t, first.CancelledAt.Unix(), second.CancelledAt.Unix())
}

func TestCancel_NotFound(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.cancelUC.Execute(context.Background(), "nao-existe", "caller-ana", false)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

// ======================================================
// EDIT
// ======================================================

func TestEdit_AdminOnly(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ap, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	_, err = env.editUC.Execute(ctx, EditAppointmentInput{
		AppointmentID: ap.ID,
		ClientName:    "Ana",
		ServiceIDs:    []string{"henna"},
		Date:          "01/07/2025",
		Time:          "14:30",
		PaymentMethod: "Dinheiro",
		CallerID:      "caller-ana",
		CallerIsAdmin: false,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUnauthorized))
}

func TestEdit_RecomputesTotalAndKeepsOwner(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ap, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	edited, err := env.editUC.Execute(ctx, EditAppointmentInput{
		AppointmentID: ap.ID,
		ClientName:    "Ana Paula",
		ServiceIDs:    []string{"brow-lamination", "henna"},
		Date:          "02/07/2025",
		Time:          "10:00",
		PaymentMethod: "Debito/Credito",
		CallerID:      "giovana@studio.com",
		CallerIsAdmin: true,
	})
	require.NoError(t, err)

	assert.Equal(t, ap.ID, edited.ID)
	assert.Equal(t, "caller-ana", edited.OwnerID)
	assert.Equal(t, "confirmed", edited.Status)
	assert.Equal(t, "Ana Paula", edited.ClientName)
	assert.Equal(t, 210.00, edited.TotalPrice)
	assert.Equal(t, "02/07/2025", edited.Date)
	assert.Equal(t, "10:00", edited.Time)
	assert.Empty(t, edited.PaymentReference)
}

// Salvar sem mudar o horário não pode conflitar com o próprio registro.
func TestEdit_SameSlotDoesNotConflictWithSelf(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ap, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	edited, err := env.editUC.Execute(ctx, EditAppointmentInput{
		AppointmentID: ap.ID,
		ClientName:    "Ana",
		ServiceIDs:    []string{"tintura"},
		Date:          ap.Date,
		Time:          ap.Time,
		PaymentMethod: "Dinheiro",
		CallerID:      "giovana@studio.com",
		CallerIsAdmin: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 70.00, edited.TotalPrice)
}

func TestEdit_MovingIntoTakenSlotConflicts(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	_, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	other := validBooking("Bia", "caller-bia")
	other.Time = "16:00"
	bia, err := env.bookUC.Execute(ctx, other)
	require.NoError(t, err)

	_, err = env.editUC.Execute(ctx, EditAppointmentInput{
		AppointmentID: bia.ID,
		ClientName:    "Bia",
		ServiceIDs:    []string{"henna"},
		Date:          "01/07/2025",
		Time:          "14:30",
		PaymentMethod: "Dinheiro",
		CallerID:      "giovana@studio.com",
		CallerIsAdmin: true,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
}

func TestEdit_NotFound(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.editUC.Execute(context.Background(), EditAppointmentInput{
		AppointmentID: "nao-existe",
		ClientName:    "Ana",
		ServiceIDs:    []string{"henna"},
		Date:          "01/07/2025",
		Time:          "14:30",
		PaymentMethod: "Dinheiro",
		CallerID:      "giovana@studio.com",
		CallerIsAdmin: true,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

// ======================================================
// LIST
// ======================================================

func TestList_ClientSeesOnlyOwn(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	_, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	other := validBooking("Bia", "caller-bia")
	other.Time = "16:00"
	_, err = env.bookUC.Execute(ctx, other)
	require.NoError(t, err)

	mine, err := env.listUC.Execute(ctx, "caller-ana", false)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Ana", mine[0].ClientName)

	all, err := env.listUC.Execute(ctx, "giovana@studio.com", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// ======================================================
// RESCHEDULE REQUEST
// ======================================================

func TestRescheduleRequest_BuildsMessageWithoutMutating(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ap, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	msg, err := env.rescheduleUC.Execute(ctx, ap.ID, "caller-ana")
	require.NoError(t, err)
	assert.Contains(t, msg, "Henna")
	assert.Contains(t, msg, "01/07/2025")
	assert.Contains(t, msg, "14:30")

	reloaded, err := env.repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", reloaded.Status)
	assert.Equal(t, "14:30", reloaded.Time)
}

func TestRescheduleRequest_StrangerForbidden(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ap, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	_, err = env.rescheduleUC.Execute(ctx, ap.ID, "caller-bia")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeUnauthorized))
}

// ======================================================
// HISTORY
// ======================================================

func TestAggregateClientHistory(t *testing.T) {
	aps := []models.Appointment{
		{ClientName: "Ana", TotalPrice: 60, Status: "confirmed"},
		{ClientName: "Bia", TotalPrice: 80, Status: "confirmed"},
		{ClientName: "Ana", TotalPrice: 70, Status: "cancelled"},
		{ClientName: "Ana", Price: 30, Status: "confirmed"}, // legado
	}

	entries := AggregateClientHistory(aps, true)
	require.Len(t, entries, 2)

	// primeira aparição define a ordem
	assert.Equal(t, "Ana", entries[0].ClientName)
	assert.Equal(t, 160.00, entries[0].TotalSpent)
	assert.Len(t, entries[0].Appointments, 3)

	assert.Equal(t, "Bia", entries[1].ClientName)
	assert.Equal(t, 80.00, entries[1].TotalSpent)
}

func TestAggregateClientHistory_ExcludeCancelled(t *testing.T) {
	aps := []models.Appointment{
		{ClientName: "Ana", TotalPrice: 60, Status: "confirmed"},
		{ClientName: "Ana", TotalPrice: 70, Status: "cancelled"},
		{ClientName: "Cátia", TotalPrice: 50, Status: "cancelled"},
	}

	entries := AggregateClientHistory(aps, false)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ana", entries[0].ClientName)
	assert.Equal(t, 60.00, entries[0].TotalSpent)
	assert.Len(t, entries[0].Appointments, 1)
}

func TestClientHistory_Execute(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	ana, err := env.bookUC.Execute(ctx, validBooking("Ana", "caller-ana"))
	require.NoError(t, err)

	other := validBooking("Ana", "caller-ana")
	other.Time = "16:00"
	other.ServiceIDs = []string{"tintura"}
	_, err = env.bookUC.Execute(ctx, other)
	require.NoError(t, err)

	_, err = env.cancelUC.Execute(ctx, ana.ID, "caller-ana", false)
	require.NoError(t, err)

	withCancelled, err := env.historyUC.Execute(ctx, true)
	require.NoError(t, err)
	require.Len(t, withCancelled, 1)
	assert.Equal(t, 130.00, withCancelled[0].TotalSpent)

	withoutCancelled, err := env.historyUC.Execute(ctx, false)
	require.NoError(t, err)
	require.Len(t, withoutCancelled, 1)
	assert.Equal(t, 70.00, withoutCancelled[0].TotalSpent)
}
