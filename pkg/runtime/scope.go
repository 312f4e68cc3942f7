package runtime

import "sort"

// Frame holds the bindings of one lexical scope.
type Frame struct {
	values map[string]Value
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{values: make(map[string]Value)}
}

// ScopeStack is the ordered stack of frames an evaluation runs against.
// Index 0 is the outermost frame.
type ScopeStack struct {
	frames []*Frame
}

// NewScopeStack returns a stack holding a single global frame.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{frames: []*Frame{NewFrame()}}
}

// NewScopeStackFrom builds a stack over existing frames. The frames are
// shared, not copied.
func NewScopeStackFrom(frames []*Frame) *ScopeStack {
	out := make([]*Frame, len(frames), len(frames)+1)
	copy(out, frames)
	if len(out) == 0 {
		out = append(out, NewFrame())
	}
	return &ScopeStack{frames: out}
}

// Push opens a new innermost frame.
func (s *ScopeStack) Push() {
	s.frames = append(s.frames, NewFrame())
}

// Pop discards the innermost frame. The outermost frame is never popped.
func (s *ScopeStack) Pop() {
	if len(s.frames) > 1 {
		s.frames[len(s.frames)-1] = nil
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Depth reports the number of frames.
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// Frames returns the current frames, outermost first.
func (s *ScopeStack) Frames() []*Frame {
	out := make([]*Frame, len(s.frames))
	copy(out, s.frames)
	return out
}

// Declare binds name in the innermost frame, shadowing any existing binding.
func (s *ScopeStack) Declare(name string, value Value) {
	s.frames[len(s.frames)-1].values[name] = value
}

// Assign updates the innermost existing binding of name. It reports false
// when no frame binds name.
func (s *ScopeStack) Assign(name string, value Value) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i].values[name]; ok {
			s.frames[i].values[name] = value
			return true
		}
	}
	return false
}

// Lookup searches the frames innermost-first.
func (s *ScopeStack) Lookup(name string) (Value, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Names returns every visible binding name in sorted order.
func (s *ScopeStack) Names() []string {
	seen := make(map[string]struct{})
	for _, f := range s.frames {
		for k := range f.values {
			seen[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
