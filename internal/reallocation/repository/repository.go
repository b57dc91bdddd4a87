package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tair/warehouse-ledger/internal/reallocation/domain"
	"github.com/tair/warehouse-ledger/pkg/apperror"
)

// GormTenderContractRepository persists tender contracts via gorm.
type GormTenderContractRepository struct {
	db *gorm.DB
}

func NewGormTenderContractRepository(db *gorm.DB) *GormTenderContractRepository {
	return &GormTenderContractRepository{db: db}
}

func (r *GormTenderContractRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.TenderContract{},
		&domain.ContractReservation{},
		&domain.ConsignmentAgreement{},
		&domain.Consignment{},
		&domain.ConsignmentItem{},
	)
}

func (r *GormTenderContractRepository) Create(ctx context.Context, contract *domain.TenderContract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *GormTenderContractRepository) FindByID(ctx context.Context, id uint) (*domain.TenderContract, error) {
	var contract domain.TenderContract
	err := r.db.WithContext(ctx).First(&contract, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("tender contract with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// GormContractReservationRepository persists contract reservations via gorm.
type GormContractReservationRepository struct {
	db *gorm.DB
}

func NewGormContractReservationRepository(db *gorm.DB) *GormContractReservationRepository {
	return &GormContractReservationRepository{db: db}
}

func (r *GormContractReservationRepository) Create(ctx context.Context, reservation *domain.ContractReservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *GormContractReservationRepository) FindByContract(ctx context.Context, contractID uint) ([]domain.ContractReservation, error) {
	var reservations []domain.ContractReservation
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("id").
		Find(&reservations).Error
	return reservations, err
}

// GormConsignmentAgreementRepository persists consignment agreements via
// gorm.
type GormConsignmentAgreementRepository struct {
	db *gorm.DB
}

func NewGormConsignmentAgreementRepository(db *gorm.DB) *GormConsignmentAgreementRepository {
	return &GormConsignmentAgreementRepository{db: db}
}

func (r *GormConsignmentAgreementRepository) Create(ctx context.Context, agreement *domain.ConsignmentAgreement) error {
	return r.db.WithContext(ctx).Create(agreement).Error
}

func (r *GormConsignmentAgreementRepository) FindByID(ctx context.Context, id uint) (*domain.ConsignmentAgreement, error) {
	var agreement domain.ConsignmentAgreement
	err := r.db.WithContext(ctx).First(&agreement, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("consignment agreement with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

// GormConsignmentRepository persists consignments and their items via gorm.
type GormConsignmentRepository struct {
	db *gorm.DB
}

func NewGormConsignmentRepository(db *gorm.DB) *GormConsignmentRepository {
	return &GormConsignmentRepository{db: db}
}

func (r *GormConsignmentRepository) Create(ctx context.Context, consignment *domain.Consignment) error {
	return r.db.WithContext(ctx).Create(consignment).Error
}

func (r *GormConsignmentRepository) CreateItem(ctx context.Context, item *domain.ConsignmentItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormConsignmentRepository) FindByID(ctx context.Context, id uint) (*domain.Consignment, error) {
	var consignment domain.Consignment
	err := r.db.WithContext(ctx).Preload("Items").First(&consignment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("consignment with id %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &consignment, nil
}
