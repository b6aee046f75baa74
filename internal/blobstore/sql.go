package blobstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// SQL stores blobs in the state_blobs table created by the migrations.
type SQL struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSQL binds the backend to a gorm connection.
func NewSQL(db *gorm.DB) (*SQL, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db connection is required")
	}
	return &SQL{db: db, now: time.Now}, nil
}

func (s *SQL) Get(ctx context.Context, scope, name string) ([]byte, bool, error) {
	var row models.StateBlob
	err := s.db.WithContext(ctx).
		Where("scope = ? AND name = ?", scope, name).
		Take(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read state row")
	}
	return row.Payload, true, nil
}

func (s *SQL) Set(ctx context.Context, scope, name string, blob []byte) error {
	row := models.StateBlob{
		Scope:     scope,
		Name:      name,
		Payload:   blob,
		UpdatedAt: s.now().UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}, {Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).
		Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert state row")
	}
	return nil
}
