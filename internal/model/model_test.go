package model

import "testing"

func TestModelResolveRef(t *testing.T) {
	m := NewModel()

	ns := &Namespace{Name: "alarms"}
	alarm := &Type{Name: "alarms.Alarm", PropertyType: PropertyTypeObject}
	ns.AddType(alarm)
	m.AddNamespace(ns)

	got, ok := m.ResolveRef("alarms.Alarm")
	if !ok || got != alarm {
		t.Fatalf("ResolveRef(alarms.Alarm) = %v, %v; want the declared type", got, ok)
	}

	if _, ok := m.ResolveRef("alarms.Missing"); ok {
		t.Fatalf("ResolveRef resolved a type that was never declared")
	}

	if _, ok := m.ResolveRef("tabs.Tab"); ok {
		t.Fatalf("ResolveRef resolved a ref into an unloaded namespace")
	}

	// Bare names never resolve; the loader qualifies refs before the
	// model sees them.
	if _, ok := m.ResolveRef("Alarm"); ok {
		t.Fatalf("ResolveRef resolved an unqualified name")
	}
}

func TestTypeNames(t *testing.T) {
	tt := &Type{Name: "alarms.AlarmCreateInfo", PropertyType: PropertyTypeObject}

	if got := tt.SimpleName(); got != "AlarmCreateInfo" {
		t.Errorf("SimpleName() = %q, want %q", got, "AlarmCreateInfo")
	}

	if got := tt.UnixName(); got != "alarm_create_info" {
		t.Errorf("UnixName() = %q, want %q", got, "alarm_create_info")
	}

	mk := &Type{Name: "app.ManifestKeys", PropertyType: PropertyTypeObject}
	if !mk.IsRootManifestKeys() {
		t.Errorf("IsRootManifestKeys() = false for %q", mk.Name)
	}

	if tt.IsRootManifestKeys() {
		t.Errorf("IsRootManifestKeys() = true for %q", tt.Name)
	}
}

func TestPropertyTypeClassification(t *testing.T) {
	fundamental := []PropertyType{
		PropertyTypeBoolean, PropertyTypeDouble, PropertyTypeInt64, PropertyTypeInteger,
	}
	for _, p := range fundamental {
		if !p.IsFundamental() {
			t.Errorf("%v.IsFundamental() = false, want true", p)
		}
	}

	composite := []PropertyType{
		PropertyTypeAny, PropertyTypeArray, PropertyTypeBinary, PropertyTypeChoices,
		PropertyTypeEnum, PropertyTypeFunction, PropertyTypeObject, PropertyTypeRef,
		PropertyTypeString,
	}
	for _, p := range composite {
		if p.IsFundamental() {
			t.Errorf("%v.IsFundamental() = true, want false", p)
		}
	}

	if got := PropertyTypeDouble.String(); got != "number" {
		t.Errorf("PropertyTypeDouble.String() = %q, want %q", got, "number")
	}

	if got := PropertyType(99).String(); got != "unknown" {
		t.Errorf("PropertyType(99).String() = %q, want %q", got, "unknown")
	}
}
