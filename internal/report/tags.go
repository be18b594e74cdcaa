package report

import "sort"

// featureTagMap maps an impacted feature as shown in the editor to the
// tracker tags it implies.
var featureTagMap = map[string][]string{
	"Audio":                      {"hwe-audio"},
	"Bluetooth":                  {"hwe-bluetooth"},
	"Brightness":                 {"hwe-brightness"},
	"CANBus":                     {"hwe-canbus"},
	"Camera":                     {"oem-camera"},
	"Checkbox":                   {"checkbox test-case"},
	"External Storage":           {"oem-storage"},
	"Fingerprint Reader":         {"hwe-fingerprint"},
	"Firmware":                   {"hwe-firmware"},
	"Full Disk Encryption":       {"oem-fde"},
	"GPIO":                       {"hwe-gpio"},
	"Hotkeys":                    {"hwe-hotkeys"},
	"I2C":                        {"hwe-i2c"},
	"Install":                    {"hwe-installer"},
	"LED":                        {"hwe-led"},
	"Media Card":                 {"hwe-media"},
	"Missing driver":             {"hwe-needs-driver"},
	"Model Assertion":            {"oem-assertions"},
	"Model Pivot / Remodelling":  {"oem-assertions"},
	"Networking (ethernet)":      {"hwe-networking-ethernet", "oem-networking"},
	"Networking (modem)":         {"hwe-networking-modem", "oem-networking"},
	"Networking (wifi)":          {"hwe-networking-wifi", "oem-networking"},
	"Other Problem":              {"oem-other"},
	"Performance":                {"oem-performance"},
	"Power Management":           {"hwe-suspend-resume"},
	"Power On/Off":               {"hwe-powercycle"},
	"Recovery":                   {"oem-recovery"},
	"Secure Boot":                {"oem-secureboot"},
	"Sensor":                     {"hwe-sensor"},
	"Serial":                     {"hwe-serial"},
	"Serial Assertion":           {"oem-assertions"},
	"Snapd":                      {"oem-snapd"},
	"Store":                      {"oem-store"},
	"Stress":                     {"oem-stress"},
	"TPM":                        {"hwe-tpm"},
	"Touchpad":                   {"hwe-touchpad"},
	"Touchscreen":                {"oem-touchscreen"},
	"USB":                        {"hwe-usb"},
	"Video":                      {"hwe-graphics"},
	"Watchdog":                   {"hwe-watchdog"},
	"Zigbee":                     {"hwe-zigbee"},
}

// vendorTagMap maps an impacted vendor to its ihv-* tags.
var vendorTagMap = map[string][]string{
	"AMD":              {"ihv-amd"},
	"Atheros/Qualcomm": {"ihv-qualcomm-atheros"},
	"Gemalto":          {"ihv-gemalto"},
	"Intel":            {"ihv-intel"},
	"MTK":              {"ihv-mtk"},
	"Marvell":          {"ihv-marvell"},
	"Mighty Gecko":     {"ihv-mightygecko"},
	"Nvidia":           {"ihv-nvidia"},
	"Quectel":          {"ihv-quectel"},
	"Realtek":          {"ihv-realtek"},
	"Redpine":          {"ihv-redpine"},
	"Sierra":           {"ihv-sierra"},
	"Telegesis":        {"ihv-telegesis"},
	"Telit":            {"ihv-telit"},
}

// Features returns the selectable impacted features in display order.
func Features() []string {
	return sortedKeys(featureTagMap)
}

// Vendors returns the selectable impacted vendors in display order.
func Vendors() []string {
	return sortedKeys(vendorTagMap)
}

// FeatureTags returns the tracker tags for an impacted feature.
func FeatureTags(feature string) []string {
	return featureTagMap[feature]
}

// VendorTags returns the tracker tags for an impacted vendor.
func VendorTags(vendor string) []string {
	return vendorTagMap[vendor]
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
