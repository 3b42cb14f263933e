package pdf417

import "fmt"

// MinSecurityLevel and MaxSecurityLevel bound the error-correction level.
// Level l adds 2^(l+1) check codewords and corrects up to 2^l substituted
// codewords.
const (
	MinSecurityLevel = 0
	MaxSecurityLevel = 8
)

// generatorPolynomials[l] holds the coefficients a_0..a_{k-1} of the degree
// k = 2^(l+1) generator polynomial (leading coefficient 1 implied),
// computed once at package initialization as the product of (x - 3^i) for
// i = 1..k. The variable initializer depends on the exp/log tables in
// field.go, which sequences those ahead of this.
var generatorPolynomials = buildGeneratorPolynomials()

func buildGeneratorPolynomials() [MaxSecurityLevel + 1][]int {
	var polys [MaxSecurityLevel + 1][]int
	for level := MinSecurityLevel; level <= MaxSecurityLevel; level++ {
		k := CheckCodewordCount(level)
		g := []int{1}
		for i := 1; i <= k; i++ {
			// Multiply by (x - 3^i).
			root := gfExp(i)
			next := make([]int, len(g)+1)
			for j, c := range g {
				next[j] = gfAdd(next[j], c)
				next[j+1] = gfAdd(next[j+1], gfMultiply(c, gfSubtract(0, root)))
			}
			g = next
		}
		polys[level] = g[1:] // drop the implied leading 1
	}
	return polys
}

// CheckCodewordCount returns the number of check codewords appended at the
// given security level.
func CheckCodewordCount(level int) int { return 1 << (level + 1) }

// ValidateSecurityLevel returns an error if level is outside [0, 8].
func ValidateSecurityLevel(level int) error {
	if level < MinSecurityLevel || level > MaxSecurityLevel {
		return fmt.Errorf("pdf417: security level %d out of range [%d, %d]",
			level, MinSecurityLevel, MaxSecurityLevel)
	}
	return nil
}

// computeCheckCodewords returns the 2^(level+1) check codewords for the
// given data codewords (length descriptor and pad included) via polynomial
// division by the level's generator polynomial.
func computeCheckCodewords(data []int, level int) []int {
	coeffs := generatorPolynomials[level]
	k := len(coeffs)
	registers := make([]int, k)
	for _, d := range data {
		t := gfAdd(d, registers[k-1])
		for j := k - 1; j >= 1; j-- {
			registers[j] = gfSubtract(registers[j-1], gfMultiply(t, coeffs[k-1-j]))
		}
		registers[0] = gfSubtract(0, gfMultiply(t, coeffs[k-1]))
	}
	check := make([]int, k)
	for j := range k {
		check[j] = gfSubtract(0, registers[k-1-j])
	}
	return check
}

// correctErrors runs error correction in place over received, where the
// last checkCount codewords are check codewords. It returns the number of
// corrected codewords, or ErrChecksumFailed if the received word is not
// within correction distance of a valid codeword.
func correctErrors(received []int, checkCount int) (int, error) {
	r := newPoly(append([]int(nil), received...))
	syndromes := make([]int, checkCount)
	hasError := false
	for i := checkCount; i > 0; i-- {
		eval := r.evaluateAt(gfExp(i))
		syndromes[checkCount-i] = eval
		if eval != 0 {
			hasError = true
		}
	}
	if !hasError {
		return 0, nil
	}

	sigma, omega, err := runEuclidean(monomial(checkCount, 1), newPoly(syndromes), checkCount)
	if err != nil {
		return 0, err
	}
	locations, err := findErrorLocations(sigma)
	if err != nil {
		return 0, err
	}
	magnitudes := findErrorMagnitudes(omega, sigma, locations)
	for i, loc := range locations {
		position := len(received) - 1 - gfLog(loc)
		if position < 0 {
			return 0, ErrChecksumFailed
		}
		received[position] = gfSubtract(received[position], magnitudes[i])
	}

	// Re-verify: the corrected word must have all-zero syndromes.
	corrected := newPoly(append([]int(nil), received...))
	for i := checkCount; i > 0; i-- {
		if corrected.evaluateAt(gfExp(i)) != 0 {
			return 0, ErrChecksumFailed
		}
	}
	return len(locations), nil
}

// runEuclidean runs the extended Euclidean algorithm on a and b, stopping
// when the remainder degree drops below R/2, and returns the error locator
// and evaluator polynomials.
func runEuclidean(a, b poly, rDegree int) (sigma, omega poly, err error) {
	if a.degree() < b.degree() {
		a, b = b, a
	}
	rLast, r := a, b
	tLast, t := polyZero, polyOne

	for r.degree() >= rDegree/2 {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = r, t
		if rLast.isZero() {
			return poly{}, poly{}, ErrChecksumFailed
		}
		r = rLastLast
		q := polyZero
		dltInverse := gfInverse(rLast.coefficient(rLast.degree()))
		for r.degree() >= rLast.degree() && !r.isZero() {
			degreeDiff := r.degree() - rLast.degree()
			scale := gfMultiply(r.coefficient(r.degree()), dltInverse)
			q = q.add(monomial(degreeDiff, scale))
			r = r.subtract(rLast.multiply(monomial(degreeDiff, scale)))
		}
		t = q.multiply(tLast).subtract(tLastLast).negative()
	}

	sigmaTilde := t.coefficient(0)
	if sigmaTilde == 0 {
		return poly{}, poly{}, ErrChecksumFailed
	}
	inverse := gfInverse(sigmaTilde)
	return t.multiplyScalar(inverse), r.multiplyScalar(inverse), nil
}

// findErrorLocations finds the roots of the error locator polynomial by
// exhaustive search over the field.
func findErrorLocations(sigma poly) ([]int, error) {
	numErrors := sigma.degree()
	locations := make([]int, 0, numErrors)
	for i := 1; i < fieldSize && len(locations) < numErrors; i++ {
		if sigma.evaluateAt(i) == 0 {
			locations = append(locations, gfInverse(i))
		}
	}
	if len(locations) != numErrors {
		return nil, ErrChecksumFailed
	}
	return locations, nil
}

// findErrorMagnitudes computes the error magnitude at each located position
// via the Forney formula.
func findErrorMagnitudes(omega, sigma poly, locations []int) []int {
	degree := sigma.degree()
	derivative := make([]int, degree)
	for i := 1; i <= degree; i++ {
		derivative[degree-i] = gfMultiply(i, sigma.coefficient(i))
	}
	formalDerivative := newPoly(derivative)

	magnitudes := make([]int, len(locations))
	for i, loc := range locations {
		xiInverse := gfInverse(loc)
		numerator := gfSubtract(0, omega.evaluateAt(xiInverse))
		denominator := gfInverse(formalDerivative.evaluateAt(xiInverse))
		magnitudes[i] = gfMultiply(numerator, denominator)
	}
	return magnitudes
}
