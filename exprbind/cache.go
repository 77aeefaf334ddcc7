package exprbind

import (
	"sync"

	"github.com/expr-lang/expr/vm"
)

// ProgramCache stores compiled expression programs keyed by expression text.
type ProgramCache interface {
	Get(expression string) (*vm.Program, bool)
	Set(expression string, program *vm.Program)
}

// Cache is an in-memory ProgramCache safe for concurrent use.
type Cache struct {
	data sync.Map
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get(expression string) (*vm.Program, bool) {
	value, ok := c.data.Load(expression)
	if !ok {
		return nil, false
	}
	return value.(*vm.Program), true
}

func (c *Cache) Set(expression string, program *vm.Program) {
	c.data.Store(expression, program)
}

// Delete removes one cached program.
func (c *Cache) Delete(expression string) {
	c.data.Delete(expression)
}

// Size counts the cached programs.
func (c *Cache) Size() int {
	count := 0
	c.data.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Clear removes every cached program.
func (c *Cache) Clear() {
	c.data.Range(func(key, _ any) bool {
		c.data.Delete(key)
		return true
	})
}
