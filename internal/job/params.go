package job

// Param is a single key/value entry in a job's parameter mapping.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered string-keyed parameter mapping. Keys are unique;
// insertion order is preserved so queued payloads log deterministically.
// All methods treat the receiver as immutable and return copies, which
// keeps payloads safe to share between the producer and the lane buffer.
type Params []Param

// With returns a copy of the params with key set to value. An existing
// key is replaced in place, preserving its original position.
func (p Params) With(key string, value any) Params {
	out := p.clone()
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Param{Key: key, Value: value})
}

// Get returns the value for key and whether it was present.
func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// Keys returns the parameter keys in insertion order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, param := range p {
		keys = append(keys, param.Key)
	}
	return keys
}

// Len returns the number of parameters.
func (p Params) Len() int {
	return len(p)
}

// TemplateData converts the ordered mapping into the shape handler
// templates consume. This is the only place the generic representation
// is unwrapped; the processor calls it immediately before invoking a
// handler so the queue core never depends on handler-specific types.
func (p Params) TemplateData() TemplateData {
	data := make(TemplateData, len(p))
	for _, param := range p {
		data[param.Key] = param.Value
	}
	return data
}

// clone returns a shallow copy of the params slice.
func (p Params) clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	copy(out, p)
	return out
}
