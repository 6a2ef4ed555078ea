package storage

type Method int

const (
	MethodAuto Method = iota
	MethodSD
	MethodUSB
	MethodDVD
	MethodSMB
	MethodMCSlotA
	MethodMCSlotB
)

// LastLoadMethod and LastSaveMethod bound the cycles in the settings pages.
const (
	LastLoadMethod = MethodSMB
	LastSaveMethod = MethodMCSlotB
)

var methodKeys = map[Method]string{
	MethodAuto:    "auto",
	MethodSD:      "sd",
	MethodUSB:     "usb",
	MethodDVD:     "dvd",
	MethodSMB:     "smb",
	MethodMCSlotA: "mca",
	MethodMCSlotB: "mcb",
}

// String returns the key used in config files.
func (m Method) String() string {
	if k, ok := methodKeys[m]; ok {
		return k
	}
	return "unknown"
}

func ParseMethod(key string) (Method, bool) {
	for m, k := range methodKeys {
		if k == key {
			return m, true
		}
	}
	return MethodAuto, false
}

// MemoryCard reports whether file names on m are limited to card lengths.
func (m Method) MemoryCard() bool {
	return m == MethodMCSlotA || m == MethodMCSlotB
}

var (
	loadProbeOrder = []Method{MethodSD, MethodUSB, MethodDVD, MethodSMB}
	saveProbeOrder = []Method{MethodSD, MethodUSB, MethodSMB, MethodMCSlotA, MethodMCSlotB}
)
