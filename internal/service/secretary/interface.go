// Package secretary provides methods for ciphering.
package secretary

// Secretary defines a set of methods for types implementing Secretary.
type Secretary interface {
	Encode(data []byte) ([]byte, error)
	Decode(msg []byte) ([]byte, error)
}
