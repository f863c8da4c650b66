//go:build linux

package usbid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// DefaultPaths lists where Linux distributions install the USB ID
// database.
var DefaultPaths = []string{
	"/usr/share/hwdata/usb.ids",
	"/var/lib/usbutils/usb.ids",
	"/usr/share/misc/usb.ids",
}

// Database maps USB vendor and product IDs to their registered names.
type Database struct {
	mu       sync.RWMutex
	vendors  map[uint16]string
	products map[uint32]string
}

// New returns an empty database.
func New() *Database {
	return &Database{
		vendors:  make(map[uint16]string),
		products: make(map[uint32]string),
	}
}

// Load reads the first usb.ids file found among paths (DefaultPaths if
// none are given). Returns false if no file could be opened; lookups
// on an unloaded database yield empty strings.
func (db *Database) Load(paths ...string) bool {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		db.Parse(f)
		f.Close()
		return true
	}
	return false
}

// Parse reads usb.ids-format data: vendor lines ("xxxx  Name") with
// tab-indented product lines beneath them. Sections after the device
// listing (device classes, audio terminals) are ignored.
func (db *Database) Parse(r io.Reader) {
	db.mu.Lock()
	defer db.mu.Unlock()

	scanner := bufio.NewScanner(r)
	var vid uint16
	var haveVendor bool

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == '#' {
			continue
		}

		if line[0] == '\t' {
			// Product line under the current vendor. Deeper indentation
			// (interface lines) and non-device sections are skipped.
			entry := line[1:]
			if !haveVendor || entry == "" || entry[0] == '\t' {
				continue
			}
			id, name, ok := splitEntry(entry)
			if !ok {
				continue
			}
			db.products[productKey(vid, id)] = name
			continue
		}

		id, name, ok := splitEntry(line)
		if !ok {
			// A non-hex top-level line starts a trailing section
			// (class codes and similar); no vendor is current.
			haveVendor = false
			continue
		}
		vid = id
		haveVendor = true
		db.vendors[vid] = name
	}
}

// splitEntry parses "xxxx  Name" into its ID and name.
func splitEntry(line string) (uint16, string, bool) {
	if len(line) < 6 || line[4] != ' ' {
		return 0, "", false
	}
	id, err := strconv.ParseUint(line[:4], 16, 16)
	if err != nil {
		return 0, "", false
	}
	name := strings.TrimLeft(line[5:], " ")
	if name == "" {
		return 0, "", false
	}
	return uint16(id), name, true
}

// productKey packs a VID/PID pair into one map key.
func productKey(vid, pid uint16) uint32 {
	return uint32(vid)<<16 | uint32(pid)
}

// Vendor returns the registered vendor name for vid, or "".
func (db *Database) Vendor(vid uint16) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.vendors[vid]
}

// Product returns the registered product name for a VID/PID pair, or "".
func (db *Database) Product(vid, pid uint16) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.products[productKey(vid, pid)]
}

// Describe returns a display string for a VID/PID pair: registered
// names where known, the hex IDs otherwise.
func (db *Database) Describe(vid, pid uint16) string {
	vendor := db.Vendor(vid)
	if vendor == "" {
		vendor = fmt.Sprintf("%04x", vid)
	}
	product := db.Product(vid, pid)
	if product == "" {
		product = fmt.Sprintf("%04x", pid)
	}
	return vendor + " " + product
}

// System is the process-wide database, loaded from DefaultPaths on
// first use.
var (
	system     *Database
	systemOnce sync.Once
)

// Describe looks up a VID/PID pair in the system database.
func Describe(vid, pid uint16) string {
	systemOnce.Do(func() {
		system = New()
		system.Load()
	})
	return system.Describe(vid, pid)
}
