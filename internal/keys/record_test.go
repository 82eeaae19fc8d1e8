package keys

import (
	"reflect"
	"testing"
)

func TestDisplayOriginPriority(t *testing.T) {
	tests := []struct {
		name    string
		origins []Origin
		want    Origin
	}{
		{"github only", []Origin{OriginGithubUser}, OriginGithubUser},
		{"github beats known hosts", []Origin{OriginKnownHosts, OriginGithubUser}, OriginGithubUser},
		{"known hosts beats local checkout", []Origin{OriginLocalCheckout, OriginKnownHosts}, OriginKnownHosts},
		{"all three", []Origin{OriginLocalCheckout, OriginKnownHosts, OriginGithubUser}, OriginGithubUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{Principal: "alice", Type: TypeEd25519, Material: "AAAA", Origins: tt.origins}
			if got := rec.DisplayOrigin(); got != tt.want {
				t.Errorf("DisplayOrigin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetSortOrdersByPrincipalThenType(t *testing.T) {
	set := Set{
		{Principal: "bob", Type: TypeEd25519, Material: "B1", Origins: []Origin{OriginGithubUser}},
		{Principal: "Alice", Type: TypeRSA, Material: "A2", Origins: []Origin{OriginGithubUser}},
		{Principal: "alice", Type: TypeEd25519, Material: "A1", Origins: []Origin{OriginGithubUser}},
	}
	set.Sort()

	var got []string
	for _, rec := range set {
		got = append(got, rec.Principal+"/"+rec.Type)
	}
	want := []string{"alice/" + TypeEd25519, "Alice/" + TypeRSA, "bob/" + TypeEd25519}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted order = %v, want %v", got, want)
	}
}

func TestSetSortIsCaseInsensitiveOnPrincipal(t *testing.T) {
	set := Set{
		{Principal: "Zed", Type: TypeEd25519, Material: "Z", Origins: []Origin{OriginGithubUser}},
		{Principal: "anna", Type: TypeEd25519, Material: "A", Origins: []Origin{OriginGithubUser}},
	}
	set.Sort()
	if set[0].Principal != "anna" {
		t.Errorf("expected anna first, got %s", set[0].Principal)
	}
}

func TestPrincipalsDeduplicates(t *testing.T) {
	set := Set{
		{Principal: "alice", Type: TypeEd25519, Material: "A1", Origins: []Origin{OriginGithubUser}},
		{Principal: "alice", Type: TypeRSA, Material: "A2", Origins: []Origin{OriginGithubUser}},
		{Principal: "bob", Type: TypeEd25519, Material: "B1", Origins: []Origin{OriginGithubUser}},
	}
	got := set.Principals()
	want := []string{"alice", "bob"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Principals() = %v, want %v", got, want)
	}
}

func TestSharedMaterialFlagsKeyReuse(t *testing.T) {
	set := Set{
		{Principal: "alice", Type: TypeEd25519, Material: "SHARED", Origins: []Origin{OriginGithubUser}},
		{Principal: "bob", Type: TypeEd25519, Material: "SHARED", Origins: []Origin{OriginGithubUser}},
		{Principal: "carol", Type: TypeEd25519, Material: "UNIQUE", Origins: []Origin{OriginGithubUser}},
	}

	shared := set.SharedMaterial()
	if len(shared) != 1 {
		t.Fatalf("expected 1 shared material, got %d", len(shared))
	}
	principals, ok := shared[TypeEd25519+" SHARED"]
	if !ok {
		t.Fatalf("expected shared entry for the reused key, got %v", shared)
	}
	if !reflect.DeepEqual(principals, []string{"alice", "bob"}) {
		t.Errorf("shared principals = %v, want [alice bob]", principals)
	}
}

func TestSharedMaterialIgnoresSameMaterialDifferentType(t *testing.T) {
	// Type is part of identity; the same blob under two type tags is
	// not key reuse.
	set := Set{
		{Principal: "alice", Type: TypeEd25519, Material: "M", Origins: []Origin{OriginGithubUser}},
		{Principal: "bob", Type: TypeRSA, Material: "M", Origins: []Origin{OriginGithubUser}},
	}
	if shared := set.SharedMaterial(); len(shared) != 0 {
		t.Errorf("expected no shared material, got %v", shared)
	}
}
