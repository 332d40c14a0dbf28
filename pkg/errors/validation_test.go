package errors

import (
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "ilamb", false},
		{"valid with dash", "my-package", false},
		{"valid with underscore", "my_package", false},
		{"valid with dot", "my.package", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo/../bar", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading dash", "-foo", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("ValidatePackageName(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateChannel(t *testing.T) {
	for _, ch := range []string{"conda-forge", "bioconda", "defaults"} {
		if err := ValidateChannel(ch); err != nil {
			t.Errorf("ValidateChannel(%q) = %v", ch, err)
		}
	}
	for _, ch := range []string{"", "a/b", "x y"} {
		if err := ValidateChannel(ch); err == nil {
			t.Errorf("ValidateChannel(%q) should fail", ch)
		}
	}
}
