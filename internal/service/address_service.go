package service

import (
	"strings"

	"github.com/shopnext/internal/logger"
	"github.com/shopnext/internal/models"
	"github.com/shopnext/internal/repository"
)

// AddressService 收货地址服务。
// 不变量：一个用户至多一个默认地址；存在地址时尽量保有一个默认。
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// ListByUser 用户地址列表
func (s *AddressService) ListByUser(userID uint) ([]models.Address, error) {
	return s.addressRepo.ListByUser(userID)
}

// GetByIDAndUser 用户地址详情
func (s *AddressService) GetByIDAndUser(id, userID uint) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrNotFound
	}
	return address, nil
}

// AddressInput 地址创建/更新输入
type AddressInput struct {
	FullName   string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  *bool
}

// Create 新增地址；用户的第一个地址自动成为默认地址
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}
	existing, err := s.addressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	address := &models.Address{
		UserID:     userID,
		FullName:   strings.TrimSpace(input.FullName),
		Phone:      strings.TrimSpace(input.Phone),
		Line1:      strings.TrimSpace(input.Line1),
		Line2:      strings.TrimSpace(input.Line2),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Country:    strings.TrimSpace(input.Country),
	}
	if address.Country == "" {
		address.Country = "India"
	}
	address.IsDefault = len(existing) == 0
	if input.IsDefault != nil && *input.IsDefault {
		address.IsDefault = true
	}

	if address.IsDefault {
		if err := s.addressRepo.ClearDefaults(userID, 0); err != nil {
			return nil, err
		}
	}
	if err := s.addressRepo.Create(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Update 更新地址；置默认时清掉其他默认
func (s *AddressService) Update(id, userID uint, input AddressInput) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrNotFound
	}

	if v := strings.TrimSpace(input.FullName); v != "" {
		address.FullName = v
	}
	if v := strings.TrimSpace(input.Phone); v != "" {
		address.Phone = v
	}
	if v := strings.TrimSpace(input.Line1); v != "" {
		address.Line1 = v
	}
	if input.Line2 != "" {
		address.Line2 = strings.TrimSpace(input.Line2)
	}
	if v := strings.TrimSpace(input.City); v != "" {
		address.City = v
	}
	if v := strings.TrimSpace(input.State); v != "" {
		address.State = v
	}
	if v := strings.TrimSpace(input.PostalCode); v != "" {
		address.PostalCode = v
	}
	if v := strings.TrimSpace(input.Country); v != "" {
		address.Country = v
	}
	if input.IsDefault != nil && *input.IsDefault && !address.IsDefault {
		if err := s.addressRepo.ClearDefaults(userID, address.ID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}

	if err := s.addressRepo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// SetDefault 指定默认地址
func (s *AddressService) SetDefault(id, userID uint) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrNotFound
	}
	if err := s.addressRepo.ClearDefaults(userID, address.ID); err != nil {
		return nil, err
	}
	if err := s.addressRepo.SetDefault(address.ID, true); err != nil {
		return nil, err
	}
	address.IsDefault = true
	return address, nil
}

// Delete 删除地址；删掉默认地址后把最早的幸存地址提为默认
func (s *AddressService) Delete(id, userID uint) error {
	address, err := s.addressRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrNotFound
	}
	wasDefault := address.IsDefault
	if err := s.addressRepo.Delete(address.ID); err != nil {
		return err
	}
	if !wasDefault {
		return nil
	}
	survivor, err := s.addressRepo.FirstByUser(userID)
	if err != nil {
		logger.Warnw("address_default_promote_failed", "user_id", userID, "error", err)
		return nil
	}
	if survivor == nil {
		return nil
	}
	if err := s.addressRepo.SetDefault(survivor.ID, true); err != nil {
		logger.Warnw("address_default_promote_failed", "user_id", userID, "address_id", survivor.ID, "error", err)
	}
	return nil
}

func validateAddressInput(input AddressInput) error {
	if strings.TrimSpace(input.FullName) == "" ||
		strings.TrimSpace(input.Phone) == "" ||
		strings.TrimSpace(input.Line1) == "" ||
		strings.TrimSpace(input.City) == "" ||
		strings.TrimSpace(input.State) == "" ||
		strings.TrimSpace(input.PostalCode) == "" {
		return ErrInvalidInput
	}
	return nil
}
