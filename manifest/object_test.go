package manifest

import (
	"encoding/json"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
	"github.com/google/go-cmp/cmp"
)

func TestObject(t *testing.T) {
	var o Object
	testerr.F0(json.Unmarshal([]byte(`{"z": 1, "a": [1, 2], "m": {"x": null}}`), &o)).ShallBeNil(t)
	if diff := cmp.Diff([]string{"z", "a", "m"}, o.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}

	o.Set("a", json.RawMessage(`"A"`))
	testerr.F0(o.SetValue("b", []string{"x"})).ShallBeNil(t)
	if !o.Delete("z") {
		t.Error("delete of existing member failed")
	}
	if o.Delete("nope") {
		t.Error("deleted missing member")
	}
	data := testerr.F1(o.MarshalJSON()).ShallBeNil(t)
	if s := string(data); s != `{"a":"A","m":{"x":null},"b":["x"]}` {
		t.Errorf("unexpected JSON %s", s)
	}

	sub, ok, err := o.Object("m")
	testerr.F0(err).ShallBeNil(t)
	if !ok || sub.Len() != 1 {
		t.Errorf("nested object %v %d", ok, sub.Len())
	}
	if _, _, err := o.Object("a"); err == nil {
		t.Error("string member decoded as object")
	}
}

func TestObject_UnmarshalJSON_trailing(t *testing.T) {
	for _, data := range []string{`{"a": 1}}`, `{"a": 1}]`, `{"a": 1} {}`} {
		var o Object
		testerr.F0(o.UnmarshalJSON([]byte(data))).
			ShallAll(t, testerr.Msg("trailing data after JSON object"))
	}
	var o Object
	testerr.F0(o.UnmarshalJSON([]byte("{\"a\": 1}\n"))).ShallBeNil(t)
}
