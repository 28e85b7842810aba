// Package serializers builds the response shapes for every resource. Each
// action renders through its own shape: compact hyperlinked entries for
// lists, nested related entities for detail views. Hyperlinks are absolute
// URLs derived from the inbound request.
package serializers

import (
	"fmt"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Lanterman/online-store/models"
)

// Page is the envelope for paginated list responses.
type Page struct {
	Count   int64 `json:"count"`
	Results any   `json:"results"`
}

type CategoryLink struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type ProductListItem struct {
	URL         string        `json:"url"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Photo       string        `json:"photo"`
	Price       uint          `json:"price"`
	StockIn     bool          `json:"stock_in"`
	Category    *CategoryLink `json:"category"`
	Description string        `json:"description"`
}

type ProductDetail struct {
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Photo       string        `json:"photo"`
	Price       uint          `json:"price"`
	StockIn     bool          `json:"stock_in"`
	Category    *CategoryLink `json:"category"`
	Description string        `json:"description"`
	Comments    []CommentRoot `json:"comments"`
}

type CommentChild struct {
	URL         string    `json:"url"`
	Description string    `json:"description"`
	User        *string   `json:"user"`
	Date        time.Time `json:"date"`
}

type CommentRoot struct {
	URL         string         `json:"url"`
	Description string         `json:"description"`
	User        *string        `json:"user"`
	Children    []CommentChild `json:"children"`
	Date        time.Time      `json:"date"`
}

type CategoryListItem struct {
	URL              string `json:"url"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	NumberOfProducts int64  `json:"number_of_products"`
}

type CategoryProduct struct {
	URL     string `json:"url"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Photo   string `json:"photo"`
	Price   uint   `json:"price"`
	StockIn bool   `json:"stock_in"`
}

type CategoryDetail struct {
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	NumberOfProducts int64             `json:"number_of_products"`
	Products         []CategoryProduct `json:"products"`
}

type BasketProduct struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type Basket struct {
	User     string          `json:"user"`
	Products []BasketProduct `json:"products"`
}

func requestBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func ProductURL(c *gin.Context, slug string) string {
	return fmt.Sprintf("%s/shop/product/%s/", requestBase(c), slug)
}

func CategoryURL(c *gin.Context, slug string) string {
	return fmt.Sprintf("%s/shop/category/%s/", requestBase(c), slug)
}

func CommentURL(c *gin.Context, id uint) string {
	return fmt.Sprintf("%s/shop/comment/%d/", requestBase(c), id)
}

func categoryLink(c *gin.Context, cat *models.Category) *CategoryLink {
	if cat == nil {
		return nil
	}
	return &CategoryLink{URL: CategoryURL(c, cat.Slug), Name: cat.Name}
}

func NewProductList(c *gin.Context, products []models.Product) []ProductListItem {
	items := make([]ProductListItem, 0, len(products))
	for i := range products {
		p := &products[i]
		items = append(items, ProductListItem{
			URL:         ProductURL(c, p.Slug),
			Name:        p.Name,
			Slug:        p.Slug,
			Photo:       p.Photo,
			Price:       p.Price,
			StockIn:     p.StockIn,
			Category:    categoryLink(c, p.Category),
			Description: p.Description,
		})
	}
	return items
}

// NewProductDetail renders a product with its threaded comments. Comments
// must be preloaded together with their authors.
func NewProductDetail(c *gin.Context, p *models.Product) ProductDetail {
	return ProductDetail{
		Name:        p.Name,
		Slug:        p.Slug,
		Photo:       p.Photo,
		Price:       p.Price,
		StockIn:     p.StockIn,
		Category:    categoryLink(c, p.Category),
		Description: p.Description,
		Comments:    NewCommentTree(c, p.Comments),
	}
}

func username(u *models.User) *string {
	if u == nil {
		return nil
	}
	return &u.Username
}

// NewCommentTree renders only root comments as top-level entries, each
// embedding its direct children. Both levels are ordered newest-first, and
// nothing below the second level is rendered.
func NewCommentTree(c *gin.Context, comments []models.Comment) []CommentRoot {
	childrenOf := make(map[uint][]CommentChild)
	for i := range comments {
		cm := &comments[i]
		if cm.ParentID == nil {
			continue
		}
		childrenOf[*cm.ParentID] = append(childrenOf[*cm.ParentID], newCommentChild(c, cm))
	}

	roots := make([]CommentRoot, 0)
	for i := range comments {
		cm := &comments[i]
		if cm.ParentID != nil {
			continue
		}
		children := childrenOf[cm.ID]
		if children == nil {
			children = []CommentChild{}
		}
		sort.Slice(children, func(i, j int) bool { return children[i].Date.After(children[j].Date) })
		roots = append(roots, CommentRoot{
			URL:         CommentURL(c, cm.ID),
			Description: cm.Description,
			User:        username(cm.User),
			Children:    children,
			Date:        cm.Date,
		})
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Date.After(roots[j].Date) })
	return roots
}

func newCommentChild(c *gin.Context, cm *models.Comment) CommentChild {
	return CommentChild{
		URL:         CommentURL(c, cm.ID),
		Description: cm.Description,
		User:        username(cm.User),
		Date:        cm.Date,
	}
}

// NewCommentDetail picks the shape by the comment's position in the
// thread: roots embed their children, replies render flat.
func NewCommentDetail(c *gin.Context, cm *models.Comment) any {
	if cm.IsRoot() {
		children := make([]models.Comment, 0, len(cm.Children)+1)
		children = append(children, cm.Children...)
		tree := NewCommentTree(c, append(children, *cm))
		if len(tree) > 0 {
			return tree[0]
		}
	}
	return newCommentChild(c, cm)
}

// CategoryWithCount carries the product count annotation for list views.
type CategoryWithCount struct {
	models.Category
	NumberOfProducts int64 `json:"number_of_products"`
}

func NewCategoryList(c *gin.Context, categories []CategoryWithCount) []CategoryListItem {
	items := make([]CategoryListItem, 0, len(categories))
	for i := range categories {
		cat := &categories[i]
		items = append(items, CategoryListItem{
			URL:              CategoryURL(c, cat.Slug),
			Name:             cat.Name,
			Slug:             cat.Slug,
			NumberOfProducts: cat.NumberOfProducts,
		})
	}
	return items
}

func NewCategoryDetail(c *gin.Context, cat *models.Category) CategoryDetail {
	products := make([]CategoryProduct, 0, len(cat.Products))
	for i := range cat.Products {
		p := &cat.Products[i]
		products = append(products, CategoryProduct{
			URL:     ProductURL(c, p.Slug),
			Name:    p.Name,
			Slug:    p.Slug,
			Photo:   p.Photo,
			Price:   p.Price,
			StockIn: p.StockIn,
		})
	}
	return CategoryDetail{
		Name:             cat.Name,
		Slug:             cat.Slug,
		NumberOfProducts: int64(len(cat.Products)),
		Products:         products,
	}
}

func NewBasket(c *gin.Context, b *models.Basket) Basket {
	products := make([]BasketProduct, 0, len(b.Products))
	for i := range b.Products {
		p := &b.Products[i]
		products = append(products, BasketProduct{URL: ProductURL(c, p.Slug), Name: p.Name})
	}
	return Basket{User: b.User, Products: products}
}
