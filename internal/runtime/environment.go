package runtime

import (
	"sort"

	"github.com/edwingeng/deque"
)

// frame is one level of name bindings, corresponding to one block scope.
type frame map[string]Value

// Environment is an ordered stack of frames. The innermost frame sits at the
// front of the deque and the permanent global frame at the back, so ranging
// over the deque visits frames innermost to outermost.
//
// An Environment is owned by a single evaluation; it is not safe for
// concurrent use.
type Environment struct {
	frames deque.Deque
}

// NewEnvironment returns an environment holding only the global frame.
func NewEnvironment() *Environment {
	e := &Environment{frames: deque.NewDeque()}
	e.frames.PushFront(make(frame))
	return e
}

// AddLevel pushes an empty frame.
func (e *Environment) AddLevel() {
	e.frames.PushFront(make(frame))
}

// PopLevel pops the innermost frame. The global frame is never removed.
func (e *Environment) PopLevel() {
	if e.frames.Len() <= 1 {
		return
	}
	e.frames.PopFront()
}

// Clear drops every frame above the global one and empties the global frame
// in place.
func (e *Environment) Clear() {
	for e.frames.Len() > 1 {
		e.frames.PopFront()
	}
	clear(e.global())
}

// Depth is the number of frames above the global one.
func (e *Environment) Depth() int {
	return e.frames.Len() - 1
}

// Set binds name. A local set binds in the innermost frame; otherwise the
// nearest existing binding is overwritten, or a global one is created.
func (e *Environment) Set(name string, v Value, isLocal bool) {
	if isLocal {
		e.innermost()[name] = v
		return
	}
	if f, ok := e.lookup(name); ok {
		f[name] = v
		return
	}
	e.global()[name] = v
}

// Get resolves name innermost to outermost.
func (e *Environment) Get(name string) (Value, bool) {
	f, ok := e.lookup(name)
	if !ok {
		return nil, false
	}
	return f[name], true
}

// Has reports whether name is bound in any frame.
func (e *Environment) Has(name string) bool {
	_, ok := e.lookup(name)
	return ok
}

// Globals returns the sorted names bound in the global frame.
func (e *Environment) Globals() []string {
	g := e.global()
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Environment) lookup(name string) (frame, bool) {
	var found frame
	e.frames.Range(func(_ int, v deque.Elem) bool {
		f := v.(frame)
		if _, ok := f[name]; ok {
			found = f
			return false
		}
		return true
	})
	return found, found != nil
}

func (e *Environment) innermost() frame {
	return e.frames.Front().(frame)
}

func (e *Environment) global() frame {
	return e.frames.Back().(frame)
}
