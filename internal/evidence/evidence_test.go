package evidence

import "testing"

func trusted() HostSet {
	return NewHostSet([]string{"doi.org", "zenodo.org", "ncbi.nlm.nih.gov"})
}

func TestHasPID(t *testing.T) {
	tests := []struct {
		name string
		urls []string
		want bool
	}{
		{"doi", []string{"https://doi.org/10.5281/zenodo.123"}, true},
		{"bare doi", []string{"10.1234/abcd"}, true},
		{"handle", []string{"https://hdl.handle.net/2027/xyz"}, true},
		{"ark", []string{"ark:/12148/btv1b8449691v"}, true},
		{"plain link", []string{"https://example.org/data"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPID(tt.urls); got != tt.want {
				t.Errorf("HasPID(%v) = %v, want %v", tt.urls, got, tt.want)
			}
		})
	}
}

func TestHost(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://Zenodo.org/record/1", "zenodo.org"},
		{"zenodo.org/record/1", "zenodo.org"},
		{"ftp://files.example.org/x", "files.example.org"},
		{"http://host:8080/path", "host:8080"},
		{"://not a url", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Host(tt.raw); got != tt.want {
			t.Errorf("Host(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestHasTrusted(t *testing.T) {
	hosts := trusted()
	tests := []struct {
		name string
		urls []string
		want bool
	}{
		{"exact host", []string{"https://zenodo.org/record/1"}, true},
		{"subdomain", []string{"https://geo.ncbi.nlm.nih.gov/q"}, true},
		{"pid counts as trusted", []string{"10.1234/abcd"}, true},
		{"untrusted host", []string{"https://example.org/data"}, false},
		{"suffix is not subdomain", []string{"https://notzenodo.org/x"}, false},
		{"malformed degrades", []string{"http://\x7f"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasTrusted(tt.urls, hosts); got != tt.want {
				t.Errorf("HasTrusted(%v) = %v, want %v", tt.urls, got, tt.want)
			}
		})
	}
}

func TestCategorize_Precedence(t *testing.T) {
	hosts := trusted()
	tests := []struct {
		name string
		urls []string
		want Category
	}{
		// A DOI resolving at a trusted host is still PID, never TrustedHost.
		{"pid wins over trusted host", []string{"https://doi.org/10.5281/zenodo.123"}, CategoryPID},
		{"trusted host", []string{"https://zenodo.org/record/1"}, CategoryTrustedHost},
		{"other link", []string{"https://example.org/data"}, CategoryOtherLink},
		{"none", nil, CategoryNone},
		{"blank strings are none", []string{"", "  "}, CategoryNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.urls, hosts); got != tt.want {
				t.Errorf("Categorize(%v) = %v, want %v", tt.urls, got, tt.want)
			}
		})
	}
}

func TestParseHosts(t *testing.T) {
	set := ParseHosts("doi.org; Zenodo.org ;;figshare.com")
	for _, h := range []string{"doi.org", "zenodo.org", "figshare.com"} {
		if !set.Contains(h) {
			t.Errorf("expected %q in host set", h)
		}
	}
	if len(set) != 3 {
		t.Errorf("expected 3 hosts, got %d", len(set))
	}
}
