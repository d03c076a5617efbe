package solc

import "encoding/json"

// MarshalJSON renders a nested-assembly entry as its object form, or a
// plain hex string otherwise.
func (d DataEntry) MarshalJSON() ([]byte, error) {
	if d.Assembly != nil {
		return json.Marshal(d.Assembly)
	}
	return json.Marshal(d.Hex)
}

// UnmarshalJSON distinguishes the two shapes solc's ".data" map
// entries can take by sniffing the first non-whitespace byte: '{'
// means a nested RawAssembly, anything else (a quoted hex string)
// means a content hash.
func (d *DataEntry) UnmarshalJSON(raw []byte) error {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			var asm RawAssembly
			if err := json.Unmarshal(raw, &asm); err != nil {
				return err
			}
			d.Assembly = &asm
			return nil
		default:
			var hex string
			if err := json.Unmarshal(raw, &hex); err != nil {
				return err
			}
			d.Hex = hex
			return nil
		}
	}
	return nil
}
