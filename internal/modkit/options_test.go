package modkit

import "testing"

type wiredPorts struct{ Names []string }

func TestBuildOptions(t *testing.T) {
	got := Build(
		WithName("importer"),
		WithPorts(wiredPorts{Names: []string{"a"}}),
	)

	if got.Name != "importer" {
		t.Fatalf("Name = %q", got.Name)
	}
	p, ok := got.Ports.(wiredPorts)
	if !ok || len(p.Names) != 1 {
		t.Fatalf("Ports = %#v", got.Ports)
	}
}

func TestBuildDefaults(t *testing.T) {
	got := Build()
	if got.Name != "" || got.Ports != nil {
		t.Fatalf("zero Build = %+v", got)
	}
}
