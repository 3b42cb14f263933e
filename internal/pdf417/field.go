package pdf417

// PDF417 error correction operates over the prime field GF(929) with
// generator 3. The exp/log tables are built once at package init and are
// read-only afterwards, so concurrent encode/decode calls share them
// without synchronization.

const (
	// fieldSize is the modulus of the codeword field. Codeword values are
	// in [0, fieldSize).
	fieldSize = 929

	// fieldGenerator is the primitive element used to build the exp/log
	// tables and the error-correction generator polynomials.
	fieldGenerator = 3
)

// Variable initializers rather than an init func: the generator
// polynomials in errorcorrection.go call gfExp during their own
// initialization, and only variable initialization is ordered by
// dependency rather than by file name.
var expTable, logTable = buildFieldTables()

func buildFieldTables() ([fieldSize - 1]int, [fieldSize]int) {
	var exp [fieldSize - 1]int
	var log [fieldSize]int
	x := 1
	for i := range fieldSize - 1 {
		exp[i] = x
		log[x] = i
		x = (x * fieldGenerator) % fieldSize
	}
	return exp, log
}

func gfAdd(a, b int) int { return (a + b) % fieldSize }

func gfSubtract(a, b int) int { return (fieldSize + a - b) % fieldSize }

func gfMultiply(a, b int) int { return (a * b) % fieldSize }

// gfExp returns fieldGenerator**a.
func gfExp(a int) int { return expTable[a%(fieldSize-1)] }

// gfLog returns the discrete log of a. a must be nonzero.
func gfLog(a int) int { return logTable[a] }

// gfInverse returns the multiplicative inverse of a. a must be nonzero.
func gfInverse(a int) int {
	return expTable[(fieldSize-1-logTable[a])%(fieldSize-1)]
}
