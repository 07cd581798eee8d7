package services

import (
	"context"
	"fmt"

	"food-marketplace/logger"
	"food-marketplace/models"
)

type CartInput struct {
	Food_id string `json:"food_id" validate:"required"`
	Unit    int    `json:"unit"`
}

type CartService struct {
	customers CustomerStore
	foods     FoodStore
	log       *logger.Logger
}

func NewCartService(customers CustomerStore, foods FoodStore, log *logger.Logger) *CartService {
	return &CartService{customers: customers, foods: foods, log: log.WithComponent("cart_service")}
}

// AddToCart sets the unit for a food. A positive unit replaces or appends the
// entry, a non-positive unit removes it and is a no-op when the food is not
// in the cart.
func (s *CartService) AddToCart(ctx context.Context, customerID string, in CartInput) ([]models.CartItem, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	foodID, err := parseID(in.Food_id)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.foods.FindByID(ctx, foodID); err != nil {
		return nil, fmt.Errorf("unable to add to cart: %w", err)
	}

	exists := false
	for _, item := range customer.Cart {
		if item.Food == foodID {
			exists = true
			break
		}
	}

	switch {
	case in.Unit > 0:
		err = s.customers.PutCartItem(ctx, id, foodID, in.Unit)
	case exists:
		err = s.customers.RemoveCartItem(ctx, id, foodID)
	default:
		return cartOf(customer), nil
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cartOf(updated), nil
}

func (s *CartService) GetCart(ctx context.Context, customerID string) ([]models.CartItem, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(customer.Cart) == 0 {
		return nil, models.ErrEmptyCart
	}
	return customer.Cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, customerID string) ([]models.CartItem, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(customer.Cart) == 0 {
		return nil, fmt.Errorf("cart is already empty: %w", models.ErrEmptyCart)
	}
	if err := s.customers.ClearCart(ctx, id); err != nil {
		return nil, err
	}
	return []models.CartItem{}, nil
}

func cartOf(c *models.Customer) []models.CartItem {
	if c.Cart == nil {
		return []models.CartItem{}
	}
	return c.Cart
}
