package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_FieldEquivalence(t *testing.T) {
	got := NewConfig(3, 4, 5, VariantBlocked2, 2, 1, 4, "two-level blocking")
	want := Config{
		M:       3,
		N:       4,
		K:       5,
		Variant: VariantBlocked2,
		Block1:  2,
		L1:      1,
		Block2:  4,
		Title:   "two-level blocking",
	}
	assert.Equal(t, want, got)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{M: 4, N: 4, K: 4, Variant: VariantNaive}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid naive", func(c *Config) {}, nil},
		{"zero M", func(c *Config) { c.M = 0 }, ErrBadDimension},
		{"negative N", func(c *Config) { c.N = -1 }, ErrBadDimension},
		{"zero K", func(c *Config) { c.K = 0 }, ErrBadDimension},
		{"unknown variant", func(c *Config) { c.Variant = "strassen" }, ErrUnknownVariant},
		{"empty variant", func(c *Config) { c.Variant = "" }, ErrUnknownVariant},
		{"blocked1 without block1", func(c *Config) { c.Variant = VariantBlocked1 }, ErrBadBlockSize},
		{"blocked1 negative l1", func(c *Config) {
			c.Variant = VariantBlocked1
			c.Block1 = 2
			c.L1 = -1
		}, ErrBadBlockSize},
		{"blocked2 without block2", func(c *Config) {
			c.Variant = VariantBlocked2
			c.Block1 = 2
		}, ErrBadBlockSize},
		{"blocked2 complete", func(c *Config) {
			c.Variant = VariantBlocked2
			c.Block1 = 2
			c.Block2 = 4
		}, nil},
		// unused block parameters are a documented no-op, never an error
		{"naive with l1", func(c *Config) { c.L1 = 4 }, nil},
		{"transposed with block2", func(c *Config) {
			c.Variant = VariantTransposed
			c.Block2 = 4
		}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	for _, name := range ValidVariantNames() {
		v, err := ParseVariant(name)
		assert.NoError(t, err)
		assert.Equal(t, Variant(name), v)
		assert.NotEmpty(t, v.Describe())
	}

	_, err := ParseVariant("winograd")
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.Contains(t, err.Error(), "blocked-1-level")
}

func TestVariant_ParameterConsumption(t *testing.T) {
	assert.False(t, VariantNaive.Blocked())
	assert.False(t, VariantTransposed.Blocked())
	assert.True(t, VariantBlocked1.Blocked())
	assert.True(t, VariantBlocked2.Blocked())

	assert.True(t, VariantBlocked1.UsesL1())
	assert.False(t, VariantBlocked2.UsesL1())

	assert.True(t, VariantBlocked2.UsesBlock2())
	assert.False(t, VariantBlocked1.UsesBlock2())
}
