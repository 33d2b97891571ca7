package hubspot

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// ParamKind identifies the variant held by a ParamValue.
type ParamKind int

// Parameter kinds. The kind decides how a value is serialized into the
// query string.
const (
	KindString ParamKind = iota
	KindInt
	KindTime
	KindInterval
	KindList
	KindBatch
)

// String implements fmt.Stringer.
func (k ParamKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindTime:
		return "time"
	case KindInterval:
		return "interval"
	case KindList:
		return "list"
	case KindBatch:
		return "batch"
	default:
		return "unknown"
	}
}

// ParamValue is a request parameter value. The set of implementations is
// closed: String, Int, Timestamp, Interval, List and Batch.
type ParamValue interface {
	Kind() ParamKind
	isParamValue()
}

// String is a plain string value.
type String string

// Int is an integer value.
type Int int64

// Timestamp is a point in time, sent as epoch milliseconds.
type Timestamp time.Time

// Interval is a begin/end pair emitted as two entries under the same key.
type Interval struct {
	Begin ParamValue
	End   ParamValue
}

// List is emitted as one entry per element under the same key.
type List []ParamValue

// Batch marks a value whose key is renamed before it is emitted: a leading
// "batch_" is stripped and the remainder converted to lowerCamel, so
// batch_from_id becomes fromId.
type Batch struct {
	Value ParamValue
}

func (String) Kind() ParamKind    { return KindString }
func (Int) Kind() ParamKind       { return KindInt }
func (Timestamp) Kind() ParamKind { return KindTime }
func (Interval) Kind() ParamKind  { return KindInterval }
func (List) Kind() ParamKind      { return KindList }
func (Batch) Kind() ParamKind     { return KindBatch }

func (String) isParamValue()    {}
func (Int) isParamValue()       {}
func (Timestamp) isParamValue() {}
func (Interval) isParamValue()  {}
func (List) isParamValue()      {}
func (Batch) isParamValue()     {}

// Time returns the timestamp as a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// At wraps t as a Timestamp.
func At(t time.Time) Timestamp {
	return Timestamp(t)
}

// Range builds an Interval from two Go values.
func Range(begin, end any) Interval {
	return Interval{Begin: Value(begin), End: Value(end)}
}

// BatchOf tags v as a batch parameter.
func BatchOf(v any) Batch {
	return Batch{Value: Value(v)}
}

// Value converts a Go value into a ParamValue. Slices and arrays become
// Lists, times become Timestamps and any other value is formatted as a
// String. Unsigned values beyond the int64 range are kept as Strings.
func Value(v any) ParamValue {
	switch val := v.(type) {
	case nil:
		return String("")
	case ParamValue:
		return val
	case string:
		return String(val)
	case int:
		return Int(val)
	case int8:
		return Int(val)
	case int16:
		return Int(val)
	case int32:
		return Int(val)
	case int64:
		return Int(val)
	case uint:
		if uint64(val) > math.MaxInt64 {
			return String(strconv.FormatUint(uint64(val), 10))
		}

		return Int(val)
	case uint8:
		return Int(val)
	case uint16:
		return Int(val)
	case uint32:
		return Int(val)
	case uint64:
		return String(strconv.FormatUint(val, 10))
	case bool:
		return String(strconv.FormatBool(val))
	case float32:
		return String(strconv.FormatFloat(float64(val), 'f', -1, 32))
	case float64:
		return String(strconv.FormatFloat(val, 'f', -1, 64))
	case time.Time:
		return Timestamp(val)
	case *time.Time:
		if val == nil {
			return String("")
		}

		return Timestamp(*val)
	case []string:
		list := make(List, 0, len(val))
		for _, s := range val {
			list = append(list, String(s))
		}

		return list
	case []int:
		list := make(List, 0, len(val))
		for _, n := range val {
			list = append(list, Int(n))
		}

		return list
	case []int64:
		list := make(List, 0, len(val))
		for _, n := range val {
			list = append(list, Int(n))
		}

		return list
	case []any:
		list := make(List, 0, len(val))
		for _, item := range val {
			list = append(list, Value(item))
		}

		return list
	case []byte:
		return String(val)
	case fmt.Stringer:
		return String(val.String())
	default:
		return reflectValue(val)
	}
}

// reflectValue handles slices and arrays of any element type, and falls
// back to fmt formatting for everything else.
func reflectValue(v any) ParamValue {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		list := make(List, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			list = append(list, Value(rv.Index(i).Interface()))
		}

		return list
	default:
		return String(fmt.Sprint(v))
	}
}

// Param is a single named parameter.
type Param struct {
	Name  string
	Value ParamValue
}

// Params is an ordered set of parameters. Methods never modify the
// receiver; they return a new set.
type Params []Param

// NewParams builds a Params from alternating name/value pairs. A trailing
// name without a value is ignored.
func NewParams(pairs ...any) Params {
	params := make(Params, 0, len(pairs)/2)

	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			name = fmt.Sprint(pairs[i])
		}

		params = params.With(name, pairs[i+1])
	}

	return params
}

// ParamsFromMap builds a Params from a map. Keys are sorted so that the
// resulting query string is stable.
func ParamsFromMap(m map[string]any) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	params := make(Params, 0, len(keys))
	for _, k := range keys {
		params = append(params, Param{Name: k, Value: Value(m[k])})
	}

	return params
}

// With returns a copy of p where name is set to v. An existing parameter
// keeps its position.
func (p Params) With(name string, v any) Params {
	out := p.Clone()
	value := Value(v)

	for i := range out {
		if out[i].Name == name {
			out[i].Value = value

			return out
		}
	}

	return append(out, Param{Name: name, Value: value})
}

// Without returns a copy of p with the named parameters removed.
func (p Params) Without(names ...string) Params {
	out := make(Params, 0, len(p))

	for _, param := range p {
		drop := false

		for _, name := range names {
			if param.Name == name {
				drop = true

				break
			}
		}

		if !drop {
			out = append(out, param)
		}
	}

	return out
}

// Get returns the value stored under name.
func (p Params) Get(name string) (ParamValue, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}

	return nil, false
}

// Has reports whether name is present.
func (p Params) Has(name string) bool {
	_, ok := p.Get(name)

	return ok
}

// Merge returns a copy of p with every parameter of other applied on top.
func (p Params) Merge(other Params) Params {
	out := p.Clone()
	for _, param := range other {
		out = out.With(param.Name, param.Value)
	}

	return out
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}

	out := make(Params, len(p))
	copy(out, p)

	return out
}
