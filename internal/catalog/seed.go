package catalog

import (
	"fmt"

	"restaurant-pos/internal/domain"
)

// Seed inserts the default cafe menu if the catalog is empty.
func (s *Service) Seed() error {
	var count int64
	if err := s.db.Model(&domain.MenuItem{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count menu: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := s.db.Create(&defaultMenu).Error; err != nil {
		return fmt.Errorf("seed menu: %w", err)
	}
	return nil
}

var defaultMenu = []domain.MenuItem{
	// Coffee
	{ID: "coffee-1", Name: "Espresso", Price: 3, Category: "Coffee", Section: "cafe", PreparationTime: 5, Description: "Rich and intense espresso shot"},
	{ID: "coffee-2", Name: "Cappuccino", Price: 4, Category: "Coffee", Section: "cafe", PreparationTime: 7, Description: "Espresso with steamed milk and foam"},
	{ID: "coffee-3", Name: "Latte", Price: 4.5, Category: "Coffee", Section: "cafe", PreparationTime: 7, Description: "Espresso with steamed milk"},
	{ID: "coffee-4", Name: "Americano", Price: 3.5, Category: "Coffee", Section: "cafe", PreparationTime: 5, Description: "Espresso with hot water"},
	{ID: "coffee-5", Name: "Mocha", Price: 5, Category: "Coffee", Section: "cafe", PreparationTime: 8, Description: "Espresso with chocolate and steamed milk"},

	// Tea
	{ID: "tea-1", Name: "Masala Chai", Price: 2.5, Category: "Tea", Section: "cafe", PreparationTime: 8, Description: "Indian spiced tea with milk"},
	{ID: "tea-2", Name: "Green Tea", Price: 2.5, Category: "Tea", Section: "cafe", PreparationTime: 5, Description: "Light and refreshing green tea"},
	{ID: "tea-3", Name: "Black Tea", Price: 2, Category: "Tea", Section: "cafe", PreparationTime: 5, Description: "Classic black tea"},
	{ID: "tea-4", Name: "Lemon Tea", Price: 3, Category: "Tea", Section: "cafe", PreparationTime: 6, Description: "Black tea with fresh lemon"},
	{ID: "tea-5", Name: "Herbal Tea", Price: 3.5, Category: "Tea", Section: "cafe", PreparationTime: 6, Description: "Caffeine-free herbal infusion"},

	// Snacks
	{ID: "snacks-1", Name: "Veg Sandwich", Price: 5, Category: "Snacks", Section: "cafe", PreparationTime: 10, Description: "Fresh vegetables with herbs and sauce"},
	{ID: "snacks-2", Name: "Cheese Sandwich", Price: 6, Category: "Snacks", Section: "cafe", PreparationTime: 10, Description: "Grilled sandwich with melted cheese"},
	{ID: "snacks-3", Name: "Paneer Tikka", Price: 7, Category: "Snacks", Section: "cafe", PreparationTime: 15, Description: "Grilled cottage cheese with Indian spices"},
	{ID: "snacks-4", Name: "French Fries", Price: 4, Category: "Snacks", Section: "cafe", PreparationTime: 10, Description: "Crispy golden fries"},
	{ID: "snacks-5", Name: "Spring Rolls", Price: 5, Category: "Snacks", Section: "cafe", PreparationTime: 12, Description: "Crispy rolls with vegetable filling"},

	// Desserts
	{ID: "desserts-1", Name: "Chocolate Brownie", Price: 6, Category: "Desserts", Section: "cafe", PreparationTime: 5, Description: "Rich chocolate brownie"},
	{ID: "desserts-2", Name: "Cheesecake", Price: 7, Category: "Desserts", Section: "cafe", PreparationTime: 5, Description: "Classic New York cheesecake"},
	{ID: "desserts-3", Name: "Ice Cream Sundae", Price: 5.5, Category: "Desserts", Section: "cafe", PreparationTime: 8, Description: "Assorted ice cream with toppings"},
	{ID: "desserts-4", Name: "Gulab Jamun", Price: 4, Category: "Desserts", Section: "cafe", PreparationTime: 5, Description: "Indian milk-based sweet dumplings"},
	{ID: "desserts-5", Name: "Pastry", Price: 5, Category: "Desserts", Section: "cafe", PreparationTime: 5, Description: "Fresh cream pastry"},

	// Beverages
	{ID: "beverages-1", Name: "Cold Coffee", Price: 4.5, Category: "Beverages", Section: "cafe", PreparationTime: 8, Description: "Chilled coffee with ice cream"},
	{ID: "beverages-2", Name: "Mango Smoothie", Price: 5, Category: "Beverages", Section: "cafe", PreparationTime: 8, Description: "Fresh mango blended with yogurt"},
	{ID: "beverages-3", Name: "Strawberry Shake", Price: 5.5, Category: "Beverages", Section: "cafe", PreparationTime: 8, Description: "Strawberry milkshake"},
	{ID: "beverages-4", Name: "Orange Juice", Price: 4, Category: "Beverages", Section: "cafe", PreparationTime: 5, Description: "Fresh squeezed orange juice"},
	{ID: "beverages-5", Name: "Lemonade", Price: 3.5, Category: "Beverages", Section: "cafe", PreparationTime: 5, Description: "Fresh lemonade with mint"},
}
