/*****************************************************************************************************************/

//	@author		Michael Roberts <michael@observerly.com>
//	@package	@observerly/spano
//	@license	Copyright © 2021-2025 observerly

/*****************************************************************************************************************/

package weights

/*****************************************************************************************************************/

import "testing"

/*****************************************************************************************************************/

func TestEdgeFalloffCenterIsFullWeight(t *testing.T) {
	w := EdgeFalloff(100, 100, 50, 50, 10)
	if w != 1 {
		t.Errorf("EdgeFalloff(center) = %v; want 1", w)
	}
}

/*****************************************************************************************************************/

func TestEdgeFalloffCornerIsZero(t *testing.T) {
	w := EdgeFalloff(100, 100, 0, 0, 10)
	if w != 0 {
		t.Errorf("EdgeFalloff(corner) = %v; want 0", w)
	}
}

/*****************************************************************************************************************/

func TestEdgeFalloffDisabledWithoutMargin(t *testing.T) {
	w := EdgeFalloff(100, 100, 0, 0, 0)
	if w != 1 {
		t.Errorf("EdgeFalloff(margin=0) = %v; want 1", w)
	}
}

/*****************************************************************************************************************/

func TestFrameWeightsShape(t *testing.T) {
	w := FrameWeights(4, 5, 2)
	if len(w) != 20 {
		t.Fatalf("FrameWeights returned %d entries; want 20", len(w))
	}
}

/*****************************************************************************************************************/
