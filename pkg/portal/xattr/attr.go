package xattr

import (
	"sort"
	"sync"
)

// Memory 是基于内存的属性容器。
// 必须通过 [New] 函数创建，零值不可用。
// 所有方法都是并发安全的。
type Memory struct {
	mu    sync.RWMutex
	attrs map[string]any
}

// New 创建新的内存属性容器。
func New(opts ...Option) *Memory {
	options := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(options)
	}

	attrs := make(map[string]any, len(options.seed))
	for name, value := range options.seed {
		attrs[name] = value
	}

	return &Memory{attrs: attrs}
}

// Attribute 按名读取属性值。
// 属性不存在时返回 (nil, false)。
func (m *Memory) Attribute(name string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.attrs[name]
	return value, ok
}

// SetAttribute 设置属性值。
// name 为空字符串时返回 ErrEmptyName。
// value 为 nil 时等价于 RemoveAttribute(name)。
func (m *Memory) SetAttribute(name string, value any) error {
	if name == "" {
		return ErrEmptyName
	}
	if value == nil {
		m.RemoveAttribute(name)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.attrs[name] = value
	return nil
}

// RemoveAttribute 删除属性。
// 属性不存在时为空操作。
func (m *Memory) RemoveAttribute(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.attrs, name)
}

// Names 返回所有属性名的有序快照。
// 返回新切片，调用方可安全修改。
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.attrs))
	for name := range m.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len 返回属性数量。
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.attrs)
}
