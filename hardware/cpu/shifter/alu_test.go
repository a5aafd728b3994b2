package shifter_test

import (
	"testing"

	"github.com/gba-core/gba/hardware/cpu/shifter"
)

func TestAddCarryAndOverflow(t *testing.T) {
	result, carry, overflow := shifter.Add(0xFFFF_FFFF, 1)
	if result != 0 || !carry || overflow {
		t.Fatalf("0xffffffff + 1 = (%#x, carry=%v, overflow=%v), want (0, true, false)", result, carry, overflow)
	}

	result, carry, overflow = shifter.Add(0x7FFF_FFFF, 1)
	if result != 0x8000_0000 || carry || !overflow {
		t.Fatalf("0x7fffffff + 1 = (%#x, carry=%v, overflow=%v), want (0x80000000, false, true)", result, carry, overflow)
	}
}

func TestSubBorrow(t *testing.T) {
	result, carry, overflow := shifter.Sub(0, 1)
	if result != 0xFFFF_FFFF || carry || overflow {
		t.Fatalf("0 - 1 = (%#x, carry=%v, overflow=%v), want (0xffffffff, false, false)", result, carry, overflow)
	}

	result, carry, _ = shifter.Sub(5, 3)
	if result != 2 || !carry {
		t.Fatalf("5 - 3 = (%d, carry=%v), want (2, true)", result, carry)
	}
}

func TestAdcIncludesCarryIn(t *testing.T) {
	result, _, _ := shifter.Adc(1, 1, true)
	if result != 3 {
		t.Fatalf("1 + 1 + C(1) = %d, want 3", result)
	}
}

func TestRsbReversesOperands(t *testing.T) {
	result, _, _ := shifter.Rsb(3, 10)
	if result != 7 {
		t.Fatalf("RSB(a=3, b=10) = %d, want 10-3=7", result)
	}
}
