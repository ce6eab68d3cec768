package fit

// crcTable is the fixed 16-entry lookup table from the FIT protocol
// reference. The checksum processes each byte low nibble first, then high
// nibble. Do not substitute another CRC-16 variant; devices reject the file.
var crcTable = [16]uint16{
	0x0000, 0xCC01, 0xD801, 0x1400,
	0xF001, 0x3C00, 0x2800, 0xE401,
	0xA001, 0x6C00, 0x7800, 0xB401,
	0x5000, 0x9C01, 0x8801, 0x4400,
}

// Checksum computes the FIT CRC-16 over data.
func Checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		// low nibble
		tmp := crcTable[crc&0x0F]
		crc = (crc >> 4) & 0x0FFF
		crc = crc ^ tmp ^ crcTable[b&0x0F]

		// high nibble
		tmp = crcTable[crc&0x0F]
		crc = (crc >> 4) & 0x0FFF
		crc = crc ^ tmp ^ crcTable[(b>>4)&0x0F]
	}
	return crc
}
