package writers

import (
	"fmt"

	"github.com/yungbote/blogwriter-backend/internal/domain/blog"
)

// Registry maps a blog type to its writer. It is read-only after construction.
type Registry struct {
	byType map[blog.BlogType]DomainStrategy
	order  []blog.BlogType
}

func NewRegistry(strategies ...DomainStrategy) *Registry {
	r := &Registry{byType: make(map[blog.BlogType]DomainStrategy, len(strategies))}
	for _, s := range strategies {
		if s == nil {
			continue
		}
		bt := s.BlogType()
		if _, dup := r.byType[bt]; !dup {
			r.order = append(r.order, bt)
		}
		r.byType[bt] = s
	}
	return r
}

// DefaultRegistry holds the four built-in writers.
func DefaultRegistry() *Registry {
	return NewRegistry(Beauty{}, Grocery{}, MoneySaving{}, Recipe{})
}

func (r *Registry) Lookup(bt blog.BlogType) (DomainStrategy, error) {
	if r != nil {
		if s, ok := r.byType[bt]; ok {
			return s, nil
		}
	}
	return nil, blog.NewError(blog.KindUnknownBlogType, fmt.Sprintf("no writer for blog type %q", string(bt)), blog.ErrUnknownBlogType)
}

func (r *Registry) BlogTypes() []blog.BlogType {
	if r == nil {
		return nil
	}
	return append([]blog.BlogType(nil), r.order...)
}
