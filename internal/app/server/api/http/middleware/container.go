package middleware

import "github.com/danielgtaylor/huma/v2"

// Container накапливает middleware для очередного обработчика.
type Container struct {
	mws huma.Middlewares
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Add(mw ...func(huma.Context, func(huma.Context))) *Container {
	c.mws = append(c.mws, mw...)
	return c
}

// GetAllAndClear отдает накопленный набор и начинает новый.
func (c *Container) GetAllAndClear() huma.Middlewares {
	out := c.mws
	c.mws = nil
	if out == nil {
		out = huma.Middlewares{}
	}
	return out
}
