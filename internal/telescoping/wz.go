package telescoping

import (
	"qkangaroo/internal/bigrat"
)

// WZCertificate is a WZ pair (F, G): F(n,k) is the summand and G(n,k)
// the companion function satisfying F(n+1,k) - F(n,k) = G(n,k+1) -
// G(n,k) for every (n,k) checked (spec §4.11's verify_wz).
type WZCertificate struct {
	F func(n, k int) (bigrat.Q, error)
	G func(n, k int) (bigrat.Q, error)
}

// VerifyWZ checks the WZ pair's defining identity F(n+1,k) - F(n,k) ==
// G(n,k+1) - G(n,k) by direct evaluation over every (n,k) in
// [0,nMax)x[0,kMax). This is a sample-based verification, not a
// derivation: it confirms a proposed certificate on the sampled grid
// the same way internal/mocktheta's Bailey layer confirms identities
// by comparing numeric sequences at a fixed q, rather than proving the
// identity holds for all n,k algebraically.
func VerifyWZ(cert WZCertificate, nMax, kMax int) (bool, error) {
	for n := 0; n < nMax; n++ {
		for k := 0; k < kMax; k++ {
			fn1k, err := cert.F(n+1, k)
			if err != nil {
				return false, err
			}
			fnk, err := cert.F(n, k)
			if err != nil {
				return false, err
			}
			gnk1, err := cert.G(n, k+1)
			if err != nil {
				return false, err
			}
			gnk, err := cert.G(n, k)
			if err != nil {
				return false, err
			}
			lhs := fn1k.Sub(fnk)
			rhs := gnk1.Sub(gnk)
			if lhs.Cmp(rhs) != 0 {
				return false, nil
			}
		}
	}
	return true, nil
}
