package decoder

import (
	"fmt"
	"sync"

	"github.com/d21d3q/gokeeloq/internal/bitbuffer"
	"github.com/d21d3q/gokeeloq/internal/records"
)

// Decoder turns a demodulated bit buffer into an output record.
type Decoder interface {
	Name() string
	DecodeRecord(*bitbuffer.Buffer) (records.Data, error)
}

var (
	regMu    sync.RWMutex
	registry []registeredDecoder
)

type registeredDecoder struct {
	profile Profile
	decoder Decoder
}

// Register stores a profile/decoder pair in memory. Several profiles may share
// one decoder.
func Register(p Profile, dec Decoder) error {
	if err := p.Validate(); err != nil {
		return err
	}
	regMu.Lock()
	defer regMu.Unlock()
	for _, rd := range registry {
		if rd.profile.Name == p.Name {
			return fmt.Errorf("profile %q already registered", p.Name)
		}
	}
	registry = append(registry, registeredDecoder{profile: p, decoder: dec})
	return nil
}

// MustRegister is Register for use from init functions.
func MustRegister(p Profile, dec Decoder) {
	if err := Register(p, dec); err != nil {
		panic(err)
	}
}

// Lookup returns the profile and decoder registered under name.
func Lookup(name string) (Profile, Decoder, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	for _, rd := range registry {
		if rd.profile.Name == name {
			return rd.profile, rd.decoder, nil
		}
	}
	return Profile{}, nil, fmt.Errorf("decoder profile %q not found", name)
}

// Profiles lists registered profiles in registration order.
func Profiles() []Profile {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]Profile, len(registry))
	for i, rd := range registry {
		out[i] = rd.profile
	}
	return out
}
