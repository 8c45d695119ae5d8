package shim

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Class
	}{
		{"node", ClassNode},
		{"npm", ClassNode},
		{"yarn", ClassYarn},
		{"npx", ClassNpx},
		{"eslint", ClassThirdParty},
		{"Node", ClassThirdParty},
		{"", ClassThirdParty},
	}

	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTargetKind_String(t *testing.T) {
	tests := map[TargetKind]string{
		NotInstalled:          "not-installed",
		ProjectLocalBinary:    "project",
		PinnedToolchainBinary: "pinned",
		UserDefaultBinary:     "user-default",
		SystemFallback:        "system",
		PendingInstall:        "pending-install",
		Unimplemented:         "unimplemented",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}

func TestDispatchTarget_HasPath(t *testing.T) {
	withPath := []DispatchTarget{projectLocal("/p"), pinned("/p"), userDefault("/p")}
	for _, target := range withPath {
		if !target.HasPath() {
			t.Errorf("%v.HasPath() = false, want true", target.Kind)
		}
	}
	withoutPath := []DispatchTarget{notInstalled, systemFallback, unimplemented, pendingInstall(nil)}
	for _, target := range withoutPath {
		if target.HasPath() {
			t.Errorf("%v.HasPath() = true, want false", target.Kind)
		}
	}
}
