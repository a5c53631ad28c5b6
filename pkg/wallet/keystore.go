package wallet

import (
	"io"
	"os"
	"sort"
	"sync"

	"github.com/multiformats/go-multibase"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type keystoreFile struct {
	Keys []keystoreEntry `yaml:"keys"`
}

type keystoreEntry struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	Data    string `yaml:"data"`
}

// KeyInfo is the public view of a stored wallet.
type KeyInfo struct {
	Name    string
	Address string
}

// Keystore persists named wallets to a YAML file. Private keys are
// stored multibase base58btc encoded; the file is created on first open
// with 0600 permissions.
type Keystore struct {
	path string
	keys keystoreFile
	idx  map[string]*Wallet

	mu sync.Mutex
}

func OpenKeystore(path string) (*Keystore, error) {
	k := &Keystore{path: path}
	if err := k.read(); err != nil {
		return nil, err
	}

	return k, nil
}

func (k *Keystore) read() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	f, err := os.OpenFile(k.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return errors.Wrap(err, "opening keystore for read")
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return errors.Wrap(err, "reading keystore")
	}

	if err := yaml.Unmarshal(d, &k.keys); err != nil {
		return errors.Wrap(err, "unmarshalling keystore")
	}

	return k.buildIdx()
}

func (k *Keystore) buildIdx() error {
	//assumes locked k.mu

	k.idx = make(map[string]*Wallet, len(k.keys.Keys))

	for _, e := range k.keys.Keys {
		_, raw, err := multibase.Decode(e.Data)
		if err != nil {
			return errors.Wrapf(err, "decoding key %q", e.Name)
		}

		w, err := FromBytes(raw)
		if err != nil {
			return errors.Wrapf(err, "parsing key %q", e.Name)
		}

		k.idx[e.Name] = w
	}

	return nil
}

// Add stores a wallet under a name. Names are unique.
func (k *Keystore) Add(name string, w *Wallet) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if _, ok := k.idx[name]; ok {
		return errors.Errorf("wallet %q already exists", name)
	}

	data, err := multibase.Encode(multibase.Base58BTC, w.Bytes())
	if err != nil {
		return errors.Wrap(err, "encoding private key")
	}

	k.keys.Keys = append(k.keys.Keys, keystoreEntry{
		Name:    name,
		Address: w.Address(),
		Data:    data,
	})
	k.idx[name] = w

	return k.write()
}

func (k *Keystore) write() error {
	f, err := os.OpenFile(k.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return errors.Wrap(err, "opening keystore for write")
	}
	defer f.Close()

	d, err := yaml.Marshal(&k.keys)
	if err != nil {
		return errors.Wrap(err, "marshalling keystore")
	}

	if err := f.Truncate(0); err != nil {
		return errors.Wrap(err, "truncating keystore")
	}

	_, err = f.Write(d)
	return err
}

// Get returns the wallet stored under name.
func (k *Keystore) Get(name string) (*Wallet, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	w, ok := k.idx[name]
	if !ok {
		return nil, errors.Errorf("wallet %q not found", name)
	}

	return w, nil
}

// List returns stored wallets sorted by name.
func (k *Keystore) List() []KeyInfo {
	k.mu.Lock()
	defer k.mu.Unlock()

	infos := make([]KeyInfo, 0, len(k.keys.Keys))
	for _, e := range k.keys.Keys {
		infos = append(infos, KeyInfo{Name: e.Name, Address: e.Address})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

	return infos
}
