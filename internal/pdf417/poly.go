package pdf417

// poly is a polynomial over GF(929). Coefficients are stored from the
// highest-degree term down, with no leading zeros (except for the zero
// polynomial, represented as a single zero coefficient).
type poly struct {
	coefficients []int
}

var (
	polyZero = newPoly([]int{0})
	polyOne  = newPoly([]int{1})
)

func newPoly(coefficients []int) poly {
	// Strip leading zeros.
	firstNonZero := 0
	for firstNonZero < len(coefficients)-1 && coefficients[firstNonZero] == 0 {
		firstNonZero++
	}
	return poly{coefficients: coefficients[firstNonZero:]}
}

// monomial returns coefficient * x**degree.
func monomial(degree, coefficient int) poly {
	if coefficient == 0 {
		return polyZero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return poly{coefficients: coefficients}
}

func (p poly) degree() int { return len(p.coefficients) - 1 }

func (p poly) isZero() bool { return p.coefficients[0] == 0 }

// coefficient returns the coefficient of x**degree.
func (p poly) coefficient(degree int) int {
	return p.coefficients[len(p.coefficients)-1-degree]
}

// evaluateAt evaluates the polynomial at a via Horner's scheme.
func (p poly) evaluateAt(a int) int {
	if a == 0 {
		return p.coefficient(0)
	}
	result := 0
	for _, c := range p.coefficients {
		result = gfAdd(gfMultiply(a, result), c)
	}
	return result
}

func (p poly) add(other poly) poly {
	if p.isZero() {
		return other
	}
	if other.isZero() {
		return p
	}
	smaller, larger := p.coefficients, other.coefficients
	if len(smaller) > len(larger) {
		smaller, larger = larger, smaller
	}
	sum := make([]int, len(larger))
	diff := len(larger) - len(smaller)
	copy(sum, larger[:diff])
	for i := diff; i < len(larger); i++ {
		sum[i] = gfAdd(smaller[i-diff], larger[i])
	}
	return newPoly(sum)
}

func (p poly) subtract(other poly) poly {
	if other.isZero() {
		return p
	}
	return p.add(other.negative())
}

func (p poly) negative() poly {
	negated := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		negated[i] = gfSubtract(0, c)
	}
	return poly{coefficients: negated}
}

func (p poly) multiply(other poly) poly {
	if p.isZero() || other.isZero() {
		return polyZero
	}
	a, b := p.coefficients, other.coefficients
	product := make([]int, len(a)+len(b)-1)
	for i, ac := range a {
		for j, bc := range b {
			product[i+j] = gfAdd(product[i+j], gfMultiply(ac, bc))
		}
	}
	return newPoly(product)
}

func (p poly) multiplyScalar(scalar int) poly {
	if scalar == 0 {
		return polyZero
	}
	if scalar == 1 {
		return p
	}
	product := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		product[i] = gfMultiply(c, scalar)
	}
	return poly{coefficients: product}
}
