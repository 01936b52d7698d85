package utils

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListParams carries cursor pagination for upstream listing. After is an
// opaque video id marking "everything past this one".
type ListParams struct {
	Limit int    `json:"limit"`
	After string `json:"after"`
	Order string `json:"order"`
}

func (p *ListParams) SetLimit(queryLimit string) error {
	if queryLimit == "" {
		p.Limit = defaultLimit
		return nil
	}
	limit, err := strconv.Atoi(queryLimit)
	if err != nil {
		return fmt.Errorf("invalid limit: %w", err)
	}
	if limit < 1 || limit > maxLimit {
		return fmt.Errorf("invalid limit: must be between 1 and %d", maxLimit)
	}
	p.Limit = limit
	return nil
}

func (p *ListParams) SetOrder(queryOrder string) error {
	switch queryOrder {
	case "":
		p.Order = "desc"
	case "asc", "desc":
		p.Order = queryOrder
	default:
		return fmt.Errorf("invalid order: must be asc or desc, got %q", queryOrder)
	}
	return nil
}

func (p *ListParams) SetAfter(queryAfter string) {
	p.After = queryAfter
}

func GetListParamsFromCtx(ctx echo.Context) (*ListParams, error) {
	p := &ListParams{}

	if err := p.SetLimit(ctx.QueryParam("limit")); err != nil {
		return nil, err
	}
	if err := p.SetOrder(ctx.QueryParam("order")); err != nil {
		return nil, err
	}
	p.SetAfter(ctx.QueryParam("after"))
	return p, nil
}
