package util

// ZeroBytes overwrites buf with zeros. Key material and intermediate
// derivation buffers must be wiped as soon as they are consumed instead of
// waiting for the garbage collector.
func ZeroBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
