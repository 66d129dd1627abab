package core

// Opcode identifies an instruction. Values below HostOpcodeBase address the
// built-in table; values at or above it address the host-registered table,
// at index (opcode - HostOpcodeBase). The partition is stable across
// save/load — names, not opcodes, are the canonical key on disk (spec.md §3).
type Opcode uint16

// HostOpcodeBase is the first opcode reserved for host-registered
// instructions; built-in opcodes occupy [0, HostOpcodeBase).
const HostOpcodeBase Opcode = 256

// IsBuiltin reports whether op addresses the built-in instruction table.
func (op Opcode) IsBuiltin() bool { return op < HostOpcodeBase }

// IsHost reports whether op addresses the host-registered instruction table.
func (op Opcode) IsHost() bool { return op >= HostOpcodeBase }

// HostIndex returns op's index into the host table. Only meaningful when
// IsHost() is true.
func (op Opcode) HostIndex() int { return int(op) - int(HostOpcodeBase) }

// HostOpcode builds the opcode addressing host table entry index.
func HostOpcode(index int) Opcode { return Opcode(int(HostOpcodeBase) + index) }
