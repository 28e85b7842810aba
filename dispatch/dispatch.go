// Package dispatch maps (resource, action) pairs to the serializer shape
// and permission predicates that apply to them. The mapping is a closed
// table: routes resolve their rule while they are being wired, so a route
// registered for an unmapped action crashes the process at startup instead
// of surfacing as a runtime fault.
package dispatch

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Lanterman/online-store/apperr"
	"github.com/Lanterman/online-store/models"
)

type Resource string

const (
	ResourceProduct  Resource = "product"
	ResourceCategory Resource = "category"
	ResourceComment  Resource = "comment"
	ResourceBasket   Resource = "basket"
)

type Action string

const (
	ActionList         Action = "list"
	ActionRetrieve     Action = "retrieve"
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDestroy      Action = "destroy"
	ActionAddComment   Action = "add_comment"
	ActionBasketToggle Action = "add_or_del_product_to_basket"
)

// Shape names the output/input form a rule serializes with.
type Shape string

const (
	ShapeProductList    Shape = "product_list"
	ShapeProductDetail  Shape = "product_detail"
	ShapeProductWrite   Shape = "product_write"
	ShapeCategoryList   Shape = "category_list"
	ShapeCategoryDetail Shape = "category_detail"
	ShapeCategoryWrite  Shape = "category_write"
	ShapeCommentDetail  Shape = "comment_detail"
	ShapeCommentWrite   Shape = "comment_write"
	ShapeBasket         Shape = "basket"
	ShapeNone           Shape = "" // destroy and toggle have no serialized body shape
)

// Predicate is a request-level permission check. It returns nil to pass.
type Predicate func(p *Principal) *apperr.Error

// ObjectPredicate is an object-level permission check run after the target
// entity has been loaded.
type ObjectPredicate func(p *Principal, obj any) *apperr.Error

func IsAuthenticated(p *Principal) *apperr.Error {
	if p == nil {
		return apperr.ErrUnauthenticated
	}
	return nil
}

// IsAdmin distinguishes missing credentials (401) from present but
// unprivileged ones (403).
func IsAdmin(p *Principal) *apperr.Error {
	if p == nil {
		return apperr.ErrUnauthenticated
	}
	if !p.IsAdmin() {
		return apperr.ErrForbidden
	}
	return nil
}

// TargetIsRootComment allows the action only when the target comment has
// no parent, so replies can never be attached below the first level.
func TargetIsRootComment(_ *Principal, obj any) *apperr.Error {
	comment, ok := obj.(*models.Comment)
	if !ok || !comment.IsRoot() {
		return apperr.ErrForbidden
	}
	return nil
}

// IsBasketOwner allows access only when the basket row belongs to the
// requesting principal's username.
func IsBasketOwner(p *Principal, obj any) *apperr.Error {
	basket, ok := obj.(*models.Basket)
	if !ok || p == nil || basket.User != p.Username {
		return apperr.ErrForbidden
	}
	return nil
}

// Rule bundles everything the selector decides for one (resource, action).
type Rule struct {
	Shape       Shape
	Perms       []Predicate
	ObjectPerms []ObjectPredicate
}

// Check runs the request-level predicates in order.
func (r Rule) Check(p *Principal) *apperr.Error {
	for _, perm := range r.Perms {
		if err := perm(p); err != nil {
			return err
		}
	}
	return nil
}

// CheckObject runs the object-level predicates against a loaded entity.
func (r Rule) CheckObject(p *Principal, obj any) *apperr.Error {
	for _, perm := range r.ObjectPerms {
		if err := perm(p, obj); err != nil {
			return err
		}
	}
	return nil
}

var registry = map[Resource]map[Action]Rule{
	ResourceProduct: {
		ActionList:         {Shape: ShapeProductList},
		ActionRetrieve:     {Shape: ShapeProductDetail},
		ActionCreate:       {Shape: ShapeProductWrite, Perms: []Predicate{IsAdmin}},
		ActionUpdate:       {Shape: ShapeProductWrite, Perms: []Predicate{IsAdmin}},
		ActionDestroy:      {Shape: ShapeNone, Perms: []Predicate{IsAdmin}},
		ActionAddComment:   {Shape: ShapeCommentWrite, Perms: []Predicate{IsAuthenticated}},
		ActionBasketToggle: {Shape: ShapeNone, Perms: []Predicate{IsAuthenticated}},
	},
	ResourceCategory: {
		ActionList:     {Shape: ShapeCategoryList},
		ActionRetrieve: {Shape: ShapeCategoryDetail},
		ActionCreate:   {Shape: ShapeCategoryWrite, Perms: []Predicate{IsAdmin}},
		ActionUpdate:   {Shape: ShapeCategoryWrite, Perms: []Predicate{IsAdmin}},
		ActionDestroy:  {Shape: ShapeNone, Perms: []Predicate{IsAdmin}},
	},
	ResourceComment: {
		ActionRetrieve: {Shape: ShapeCommentDetail},
		ActionAddComment: {
			Shape:       ShapeCommentWrite,
			Perms:       []Predicate{IsAuthenticated},
			ObjectPerms: []ObjectPredicate{TargetIsRootComment},
		},
	},
	ResourceBasket: {
		ActionList: {
			Shape:       ShapeBasket,
			Perms:       []Predicate{IsAuthenticated},
			ObjectPerms: []ObjectPredicate{IsBasketOwner},
		},
	},
}

// Lookup returns the rule for a (resource, action) pair. A miss is a
// configuration fault: the registry was not updated in lockstep with the
// actions a resource exposes.
func Lookup(res Resource, act Action) (Rule, error) {
	actions, ok := registry[res]
	if !ok {
		return Rule{}, fmt.Errorf("dispatch: unknown resource %q", res)
	}
	rule, ok := actions[act]
	if !ok {
		return Rule{}, fmt.Errorf("dispatch: resource %q has no rule for action %q", res, act)
	}
	return rule, nil
}

// MustRule is Lookup for route wiring; it panics so misconfiguration is
// fatal at startup rather than a request-time 500.
func MustRule(res Resource, act Action) Rule {
	rule, err := Lookup(res, act)
	if err != nil {
		panic(err)
	}
	return rule
}

// Require resolves the rule at wiring time and returns middleware that
// enforces its request-level permissions.
func Require(res Resource, act Action) gin.HandlerFunc {
	rule := MustRule(res, act)
	return func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		if err := rule.Check(p); err != nil {
			apperr.Abort(c, err)
			return
		}
		c.Next()
	}
}
