package handler

import (
	"encoding/base64"
	"time"

	"cosmiccraft/internal/domain/entity"
	"cosmiccraft/internal/usecase"
)

type userView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Active      bool      `json:"active"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserView(u *entity.User) *userView {
	return &userView{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Active:      u.Active,
		Role:        u.Role.String(),
		CreatedAt:   u.CreatedAt,
	}
}

type authView struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	User         *userView `json:"user"`
}

type categoryView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toCategoryView(c *entity.Category) *categoryView {
	if c == nil {
		return nil
	}

	return &categoryView{ID: c.ID, Name: c.Name, Description: c.Description}
}

type productView struct {
	ID           int64         `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Price        int           `json:"price"`
	IsOnSale     bool          `json:"isOnSale"`
	Category     *categoryView `json:"category"`
	ImagesBase64 []string      `json:"imagesBase64"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func toProductView(d *usecase.ProductDetails) *productView {
	images := make([]string, 0, len(d.Images))
	for _, img := range d.Images {
		images = append(images, base64.StdEncoding.EncodeToString(img.Data))
	}

	return &productView{
		ID:           d.Product.ID,
		Title:        d.Product.Title,
		Description:  d.Product.Description,
		Price:        d.Product.Price,
		IsOnSale:     d.Product.IsOnSale,
		Category:     toCategoryView(d.Product.Category),
		ImagesBase64: images,
		CreatedAt:    d.Product.CreatedAt,
		UpdatedAt:    d.Product.UpdatedAt,
	}
}

type cartItemView struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type cartView struct {
	ID     int64          `json:"id"`
	UserID int64          `json:"userId"`
	Items  []cartItemView `json:"items"`
}

func toCartView(c *entity.Cart) *cartView {
	items := make([]cartItemView, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, cartItemView{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return &cartView{ID: c.ID, UserID: c.UserID, Items: items}
}

type wishlistView struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	ProductIDs []int64 `json:"productIds"`
}

func toWishlistView(w *entity.Wishlist) *wishlistView {
	productIDs := w.ProductIDs
	if productIDs == nil {
		productIDs = []int64{}
	}

	return &wishlistView{ID: w.ID, UserID: w.UserID, ProductIDs: productIDs}
}

type orderItemView struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	Price     int   `json:"price"`
}

type orderView struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	Total     int             `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []orderItemView `json:"items"`
}

func toOrderView(o *entity.Order) *orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemView{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.UnitPrice})
	}

	return &orderView{
		ID:        o.ID,
		UserID:    o.UserID,
		Total:     o.Total,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}

func toOrderViews(orders []*entity.Order) []*orderView {
	views := make([]*orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}

	return views
}
