package mockapi

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"funnelpay.com/app/internal/shared/apperr"
)

var ErrDuplicate = errors.New("duplicate row")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&Session{}, &Cart{}, &CartItem{}, &Payment{}, &Charge{})
}

func (s *Store) GetSession(ctx context.Context, id string) (Session, error) {
	var row Session
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Session{}, apperr.NotFoundErr("Session not found.")
		}
		return Session{}, err
	}
	return row, nil
}

func (s *Store) CreateSession(ctx context.Context, row Session) error {
	now := time.Now()
	row.CreatedAt, row.UpdatedAt = now, now
	return translateDup(s.db.WithContext(ctx).Create(&row).Error)
}

func (s *Store) MarkSessionPurchased(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", id).
		Updates(map[string]any{"purchased": true, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundErr("Session not found.")
	}
	return nil
}

func (s *Store) GetCart(ctx context.Context, id string) (Cart, error) {
	var row Cart
	if err := s.db.WithContext(ctx).Preload("Items").First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Cart{}, apperr.NotFoundErr("Cart not found.")
		}
		return Cart{}, err
	}
	return row, nil
}

func (s *Store) CreateCart(ctx context.Context, row Cart) error {
	now := time.Now()
	row.CreatedAt, row.UpdatedAt = now, now
	return translateDup(s.db.WithContext(ctx).Create(&row).Error)
}

func (s *Store) MarkCartPaid(ctx context.Context, id string, payload *string) (Cart, error) {
	res := s.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ?", id).
		Updates(map[string]any{"paid": true, "paid_payload": payload, "updated_at": time.Now()})
	if res.Error != nil {
		return Cart{}, res.Error
	}
	if res.RowsAffected == 0 {
		return Cart{}, apperr.NotFoundErr("Cart not found.")
	}
	return s.GetCart(ctx, id)
}

// FirstPayment returns the earliest payment recorded for the reference.
func (s *Store) FirstPayment(ctx context.Context, referenceID string) (Payment, error) {
	var row Payment
	err := s.db.WithContext(ctx).
		Order("created_at ASC").
		First(&row, "reference_id = ?", referenceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payment{}, apperr.NotFoundErr("No payment recorded for reference.")
		}
		return Payment{}, err
	}
	return row, nil
}

func (s *Store) CreatePayment(ctx context.Context, row Payment) error {
	row.CreatedAt = time.Now()
	return translateDup(s.db.WithContext(ctx).Create(&row).Error)
}

func (s *Store) CreateCharge(ctx context.Context, row Charge) error {
	row.CreatedAt = time.Now()
	return translateDup(s.db.WithContext(ctx).Create(&row).Error)
}

// translateDup maps MySQL duplicate-key (1062) onto ErrDuplicate so
// handlers can answer 409 on re-seeded ids.
func translateDup(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return ErrDuplicate
	}
	return err
}
