// SPDX-License-Identifier: MIT

package tensor_test

import (
	"fmt"

	"github.com/katalvlaran/lvspace/tensor"
)

// ExampleFromNested shows coercing nested slices and exporting them back.
func ExampleFromNested() {
	d, err := tensor.FromNested[int8]([][]int{{1, 0, 1}, {0, 1, 0}})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	v, _ := d.At(1, 1)
	fmt.Println(d.Shape(), d.DType(), v)
	fmt.Println(d)

	// Output:
	// [2 3] int8 1
	// [[1, 0, 1], [0, 1, 0]]
}
