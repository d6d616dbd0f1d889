package invoices

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/karimelbaz/photodesk-backend/internal/packages"
	"github.com/karimelbaz/photodesk-backend/internal/photos"
	"github.com/karimelbaz/photodesk-backend/internal/printrequests"
	"github.com/karimelbaz/photodesk-backend/internal/registry"
	"github.com/karimelbaz/photodesk-backend/internal/selections"
	"github.com/karimelbaz/photodesk-backend/pkg/db/models"
	"github.com/karimelbaz/photodesk-backend/pkg/enums"
)

type workflowTx struct {
	db *gorm.DB
}

func (w workflowTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return w.db.WithContext(ctx).Transaction(fn)
}

func setupWorkflowDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  barcode TEXT NOT NULL UNIQUE,
  phone_number TEXT NOT NULL,
  branch_id TEXT NOT NULL,
  last_visit DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE photos (
  id TEXT PRIMARY KEY,
  file_path TEXT NOT NULL,
  thumbnail_path TEXT,
  barcode_prefix TEXT NOT NULL,
  uploaded_by TEXT NOT NULL,
  branch_id TEXT NOT NULL,
  user_id TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  sync_status TEXT NOT NULL DEFAULT 'pending',
  metadata TEXT,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE photo_selections (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  barcode_prefix TEXT NOT NULL,
  photo_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);
CREATE TABLE packages (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  branch_id TEXT NOT NULL,
  price NUMERIC NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE print_requests (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  barcode_prefix TEXT NOT NULL,
  package_id TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_method TEXT NOT NULL DEFAULT 'cash',
  is_paid INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE print_request_photos (
  id TEXT PRIMARY KEY,
  print_request_id TEXT NOT NULL,
  photo_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  unit_price NUMERIC NOT NULL,
  created_at DATETIME
);
CREATE TABLE invoices (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  barcode_prefix TEXT NOT NULL,
  branch_id TEXT NOT NULL,
  num_photos INTEGER NOT NULL,
  amount NUMERIC NOT NULL,
  tax_rate NUMERIC NOT NULL,
  tax_amount NUMERIC NOT NULL,
  total_amount NUMERIC NOT NULL,
  invoice_method TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'active',
  metadata TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

// Walks a kiosk session end to end: pick two photos with quantities 2
// and 1, stage the purchase, confirm the print. Every requested copy
// must reach the invoice.
func TestConfirmPrintInvoicesEachRequestedCopy(t *testing.T) {
	db := setupWorkflowDB(t)
	ctx := context.Background()

	userRepo := registry.NewRepository(db)
	photoRepo := photos.NewRepository(db)
	tx := workflowTx{db: db}

	selectionSvc, err := selections.NewService(tx, userRepo, photoRepo, selections.NewRepository(db))
	require.NoError(t, err)
	requestSvc, err := printrequests.NewService(tx, userRepo, photoRepo, packages.NewRepository(db), printrequests.NewRepository(db))
	require.NoError(t, err)
	invoiceSvc, err := NewService(tx, userRepo, photoRepo, NewRepository(db))
	require.NoError(t, err)

	branchID := uuid.New()
	staffID := uuid.New()
	user := &models.User{Barcode: "123456780001", PhoneNumber: "555", BranchID: branchID}
	require.NoError(t, db.Create(user).Error)

	first := &models.Photo{FilePath: "a.jpg", BarcodePrefix: "12345678", UploadedBy: staffID, BranchID: branchID, UserID: &user.ID, Status: enums.PhotoStatusPending}
	second := &models.Photo{FilePath: "b.jpg", BarcodePrefix: "12345678", UploadedBy: staffID, BranchID: branchID, UserID: &user.ID, Status: enums.PhotoStatusPending}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	replaced, err := selectionSvc.Replace(ctx, selections.ReplaceInput{
		Barcode:     user.Barcode,
		PhoneNumber: user.PhoneNumber,
		Items: []selections.SelectionItem{
			{PhotoID: first.ID, Quantity: 2},
			{PhotoID: second.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, replaced.ClonedCount)

	_, err = requestSvc.Create(ctx, printrequests.CreateInput{
		Barcode:     user.Barcode,
		PhoneNumber: user.PhoneNumber,
		BranchID:    branchID,
		Items: []printrequests.RequestItem{
			{PhotoID: first.ID, Quantity: 2},
			{PhotoID: second.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	var staged []models.Photo
	require.NoError(t, db.Where("status = ?", enums.PhotoStatusReadyToPrint).Find(&staged).Error)
	require.Len(t, staged, 3)
	for _, p := range staged {
		assert.True(t, p.IsClone(), "only clone copies should be staged")
	}

	invoice, err := invoiceSvc.ConfirmPrint(ctx, ConfirmInput{Barcode: user.Barcode, InvoiceMethod: enums.InvoiceMethodPrint})
	require.NoError(t, err)
	assert.Equal(t, 3, invoice.NumPhotos)
	assert.Equal(t, "30.00", invoice.Amount.StringFixed(2))
	assert.Equal(t, "1.50", invoice.TaxAmount.StringFixed(2))
	assert.Equal(t, "31.50", invoice.TotalAmount.StringFixed(2))

	var printed int64
	require.NoError(t, db.Model(&models.Photo{}).Where("status = ?", enums.PhotoStatusPrinted).Count(&printed).Error)
	assert.EqualValues(t, 3, printed)

	var origin models.Photo
	require.NoError(t, db.First(&origin, "id = ?", first.ID).Error)
	assert.Equal(t, enums.PhotoStatusPending, origin.Status)
}
