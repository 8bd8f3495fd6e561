package kernel

// Versioned is embedded in aggregates persisted with optimistic concurrency.
// Repositories compare it on update and advance it after a successful write.
type Versioned struct {
	value int64
}

func RestoreVersion(value int64) Versioned {
	return Versioned{value: value}
}

func (v Versioned) Version() int64 {
	return v.value
}

// AdvanceVersion is called by repositories once the row was written.
func (v *Versioned) AdvanceVersion() {
	v.value++
}
