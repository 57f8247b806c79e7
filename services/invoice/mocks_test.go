package invoice

import (
	"context"
	"time"

	"hyperinvoice/models"

	"github.com/stretchr/testify/mock"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) FetchBooking(ctx context.Context, bookingID int64) (*models.BookingRecord, error) {
	args := m.Called(ctx, bookingID)
	booking, _ := args.Get(0).(*models.BookingRecord)
	return booking, args.Error(1)
}

func (m *mockGateway) NotifyInvoiceReady(ctx context.Context, bookingID int64, documentURL string) error {
	args := m.Called(ctx, bookingID, documentURL)
	return args.Error(0)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(ctx context.Context, templateName string, rc *models.RenderContext) (*models.GeneratedDocument, error) {
	args := m.Called(ctx, templateName, rc)
	doc, _ := args.Get(0).(*models.GeneratedDocument)
	return doc, args.Error(1)
}

// renderedContext returns the context passed to the first Render call.
func (m *mockRenderer) renderedContext() *models.RenderContext {
	for _, call := range m.Calls {
		if call.Method == "Render" {
			return call.Arguments.Get(2).(*models.RenderContext)
		}
	}
	return nil
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, data []byte, logicalName string) (string, error) {
	args := m.Called(ctx, data, logicalName)
	return args.String(0), args.Error(1)
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, record *models.InvoiceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*models.InvoiceRecord, error) {
	args := m.Called(ctx, invoiceNumber)
	record, _ := args.Get(0).(*models.InvoiceRecord)
	return record, args.Error(1)
}

func (m *mockRepo) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type fixedNumbers string

func (f fixedNumbers) Generate() string {
	return string(f)
}

type orphan struct {
	bookingID     int64
	invoiceNumber string
	documentURL   string
}

type recordingObserver struct {
	started  []Step
	failed   map[Step]error
	orphaned []orphan
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{failed: map[Step]error{}}
}

func (o *recordingObserver) StepStarted(_ context.Context, step Step) {
	o.started = append(o.started, step)
}

func (o *recordingObserver) StepFinished(_ context.Context, step Step, _ time.Duration, err error) {
	if err != nil {
		o.failed[step] = err
	}
}

func (o *recordingObserver) DocumentOrphaned(_ context.Context, bookingID int64, invoiceNumber, documentURL string, _ error) {
	o.orphaned = append(o.orphaned, orphan{bookingID, invoiceNumber, documentURL})
}
