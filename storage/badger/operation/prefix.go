package operation

const (
	// codeGuardState is the key prefix for the singleton guard snapshot.
	codeGuardState = 1
)

func makePrefix(code byte) []byte {
	return []byte{code}
}
