package emu

import "fmt"

// Memory geometry. The machine has 4KB of word-addressable memory,
// addressed by byte address.
const (
	MemSizeBytes = 4096
	WordSize     = 4
	NumWords     = MemSizeBytes / WordSize
)

// AddressError reports a memory access outside the valid address space
// or not aligned to a word boundary.
type AddressError struct {
	Addr   uint32
	Access string // "fetch", "read", or "write"
}

func (e *AddressError) Error() string {
	if e.Addr%WordSize != 0 {
		return fmt.Sprintf("memory %s at 0x%X: address not word-aligned", e.Access, e.Addr)
	}
	return fmt.Sprintf("memory %s at 0x%X: address outside [0, 0x%X)", e.Access, e.Addr, MemSizeBytes)
}

// Memory is the simulated 4KB memory. Instructions and data share the
// same address space; a word is an instruction when fetched and data
// when loaded or stored. Memory remembers which words were written, for
// the final-state report.
type Memory struct {
	words    [NumWords]uint32
	modified [NumWords]bool
}

// NewMemory creates a zero-filled memory.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) index(addr uint32, access string) (int, error) {
	if addr >= MemSizeBytes || addr%WordSize != 0 {
		return 0, &AddressError{Addr: addr, Access: access}
	}
	return int(addr / WordSize), nil
}

// Fetch reads an instruction word.
func (m *Memory) Fetch(addr uint32) (uint32, error) {
	i, err := m.index(addr, "fetch")
	if err != nil {
		return 0, err
	}
	return m.words[i], nil
}

// ReadWord reads a data word as a signed 32-bit value.
func (m *Memory) ReadWord(addr uint32) (int32, error) {
	i, err := m.index(addr, "read")
	if err != nil {
		return 0, err
	}
	return int32(m.words[i]), nil
}

// WriteWord writes a data word.
func (m *Memory) WriteWord(addr uint32, value int32) error {
	i, err := m.index(addr, "write")
	if err != nil {
		return err
	}
	m.words[i] = uint32(value)
	m.modified[i] = true
	return nil
}

// LoadWords places a program image at address 0. It panics if the image
// exceeds the memory size; the loader enforces the limit first.
func (m *Memory) LoadWords(words []uint32) {
	if len(words) > NumWords {
		panic(fmt.Sprintf("image of %d words exceeds memory size %d", len(words), NumWords))
	}
	copy(m.words[:], words)
}

// ModifiedAddrs returns the byte addresses of words written during the
// run, in ascending order.
func (m *Memory) ModifiedAddrs() []uint32 {
	var addrs []uint32
	for i, mod := range m.modified {
		if mod {
			addrs = append(addrs, uint32(i*WordSize))
		}
	}
	return addrs
}
