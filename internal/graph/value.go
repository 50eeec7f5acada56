package graph

// DummyValue is the placeholder amount serialized for render-only nodes and
// edges. A truly zero-valued node cannot be laid out, so the wire format
// carries this small positive stand-in together with a renderOnly flag;
// consumers must display zero and never treat the stand-in as an amount.
const DummyValue = 0.0001

// NodeValue is a node's amount: either a real amount or a render-only
// placeholder meaning "structurally present, true value zero". Keeping the
// distinction in the type keeps the dummy constant out of all edge-value
// arithmetic; it appears only at serialization.
type NodeValue struct {
	amount     float64
	renderOnly bool
}

// Real wraps an actual amount.
func Real(amount float64) NodeValue {
	return NodeValue{amount: amount}
}

// RenderOnly marks a node that must stay visible although its true value is
// zero.
func RenderOnly() NodeValue {
	return NodeValue{renderOnly: true}
}

// valueFor returns Real(amount), or RenderOnly when the amount is not
// positive.
func valueFor(amount float64) NodeValue {
	if amount <= 0 {
		return RenderOnly()
	}
	return Real(amount)
}

// Amount returns the true amount; zero for render-only values.
func (v NodeValue) Amount() float64 {
	if v.renderOnly {
		return 0
	}
	return v.amount
}

// IsRenderOnly reports whether the value is a placeholder.
func (v NodeValue) IsRenderOnly() bool {
	return v.renderOnly
}

// wire returns the number written to the wire format.
func (v NodeValue) wire() float64 {
	if v.renderOnly {
		return DummyValue
	}
	return v.amount
}
