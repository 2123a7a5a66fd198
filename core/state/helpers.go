package state

import "math/big"

func bigZero() *big.Int {
	return big.NewInt(0)
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return bigZero()
	}
	return new(big.Int).Set(v)
}

func appendAddr(prefix []byte, addr [20]byte) []byte {
	buf := make([]byte, 0, len(prefix)+len(addr))
	buf = append(buf, prefix...)
	buf = append(buf, addr[:]...)
	return buf
}
