package neural

import (
	"embed"
	"fmt"
	"sync"
)

//go:embed weights/*.yaml
var weightsFS embed.FS

// entry caches one named network for the lifetime of the process. A failed
// load is cached too, so a bad weight file disables only the states that
// depend on it instead of being retried every tick.
type entry struct {
	once sync.Once
	net  *Network
	err  error
}

var registry sync.Map // name -> *entry

// ForName returns the shared, lazily loaded network embedded under
// weights/<name>.yaml. Repeated calls return the same instance.
func ForName(name string) (*Network, error) {
	v, _ := registry.LoadOrStore(name, &entry{})
	e := v.(*entry)
	e.once.Do(func() {
		data, err := weightsFS.ReadFile("weights/" + name + ".yaml")
		if err != nil {
			e.err = fmt.Errorf("reading weights for %q: %w", name, err)
			return
		}
		e.net, e.err = Load(data)
		if e.err != nil {
			e.err = fmt.Errorf("loading network %q: %w", name, e.err)
		}
	})
	return e.net, e.err
}
