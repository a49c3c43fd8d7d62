//go:build js && wasm

package area

import (
	"errors"
	"fmt"
	"syscall/js"
)

// LocalStorageArea is window.localStorage of the hosting page. Browsers
// throw QuotaExceededError or SecurityError from these calls; the panics
// syscall/js raises for them are turned back into errors.
type LocalStorageArea struct {
	storage js.Value
}

// OpenLocalStorage binds to globalThis.localStorage. Accessing the property
// itself throws in sandboxed frames and when storage is disabled.
func OpenLocalStorage() (a *LocalStorageArea, err error) {
	defer recoverJS("open localStorage", &err)

	ls := js.Global().Get("localStorage")
	if ls.IsUndefined() || ls.IsNull() {
		return nil, errors.New("localStorage is not available")
	}
	return &LocalStorageArea{storage: ls}, nil
}

func (a *LocalStorageArea) GetItem(key string) (value string, ok bool, err error) {
	defer recoverJS("getItem", &err)

	v := a.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false, nil
	}
	return v.String(), true, nil
}

func (a *LocalStorageArea) SetItem(key, value string) (err error) {
	defer recoverJS("setItem", &err)

	a.storage.Call("setItem", key, value)
	return nil
}

func (a *LocalStorageArea) RemoveItem(key string) (err error) {
	defer recoverJS("removeItem", &err)

	a.storage.Call("removeItem", key)
	return nil
}

func (a *LocalStorageArea) Items() (items map[string]string, err error) {
	defer recoverJS("items", &err)

	n := a.storage.Get("length").Int()
	items = make(map[string]string, n)
	for i := 0; i < n; i++ {
		k := a.storage.Call("key", i)
		if k.IsNull() {
			continue
		}
		items[k.String()] = a.storage.Call("getItem", k).String()
	}
	return items, nil
}

func (a *LocalStorageArea) Clear() (err error) {
	defer recoverJS("clear", &err)

	a.storage.Call("clear")
	return nil
}

func recoverJS(op string, err *error) {
	p := recover()
	if p == nil {
		return
	}

	jsErr, ok := p.(js.Error)
	if !ok {
		*err = fmt.Errorf("localStorage %s: %v", op, p)
		return
	}
	if jsErr.Value.Get("name").String() == "QuotaExceededError" {
		*err = fmt.Errorf("localStorage %s: %w", op, ErrQuotaExceeded)
		return
	}
	*err = fmt.Errorf("localStorage %s: %w", op, jsErr)
}
