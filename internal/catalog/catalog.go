// Package catalog owns the menu: seeded reference items, admin custom items
// and CSV bulk imports. The catalog is append-only; order items snapshot the
// price at add time, so later edits were never a requirement.
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"restaurant-pos/internal/domain"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) List() ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := s.db.Order("category, name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

func (s *Service) Get(id string) (domain.MenuItem, error) {
	var item domain.MenuItem
	err := s.db.First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.MenuItem{}, ErrMenuItemNotFound
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("get menu item: %w", err)
	}
	return item, nil
}

// AddCustomItem appends an admin-created item. It is tagged custom so the
// masters screen can tell it apart from the seeded menu.
func (s *Service) AddCustomItem(req domain.AddMenuItemRequest) (domain.MenuItem, error) {
	item := domain.MenuItem{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Price:           req.Price,
		Category:        req.Category,
		Section:         req.Section,
		PreparationTime: req.PreparationTime,
		Description:     req.Description,
		IsCustom:        true,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return domain.MenuItem{}, fmt.Errorf("add custom item: %w", err)
	}
	return item, nil
}

// Suggestions returns up to four catalog items whose category is not already
// present among the given order items. First match wins; there is no
// popularity ranking.
func (s *Service) Suggestions(items []domain.OrderItem) ([]domain.MenuItem, error) {
	present := make(map[string]bool, len(items))
	for _, it := range items {
		present[it.Category] = true
	}
	menu, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []domain.MenuItem
	for _, m := range menu {
		if present[m.Category] {
			continue
		}
		out = append(out, m)
		if len(out) == 4 {
			break
		}
	}
	return out, nil
}

// RecommendedCombos filters the static combo offers by minimum bill value.
func (s *Service) RecommendedCombos(totalAmount float64) []domain.ComboOffer {
	var out []domain.ComboOffer
	for _, offer := range comboOffers {
		if totalAmount >= offer.MinimumBillValue {
			out = append(out, offer)
		}
	}
	return out
}

var comboOffers = []domain.ComboOffer{
	{ID: "combo1", Name: "Dessert Special", Description: "Add any dessert to your meal at 30% off", MinimumBillValue: 150},
	{ID: "combo2", Name: "Beverage Bundle", Description: "Add any 2 beverages at 20% off", MinimumBillValue: 200},
}
