// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package tribles

// randTbl is the second bucket hash: a fixed permutation of the byte
// values, generated offline from a constant seed under the constraint
// that for every k the low log2(maxBuckets) bits of randTbl[k] differ
// from those of bitreverse(k). H0 and H1 therefore always disagree on
// the bucket index of a full-size branch, which is what makes cuckoo
// displacement terminate there.
var randTbl = [256]byte{
	0x95, 0x73, 0xc3, 0x4c, 0xf8, 0x9e, 0x5a, 0xd8, 0x3a, 0x7b, 0xb7, 0xe8, 0x5b, 0xf3, 0x75, 0x1c,
	0x28, 0x10, 0x8c, 0x5e, 0xd4, 0x48, 0xf6, 0xbf, 0xb6, 0x43, 0x13, 0x81, 0x57, 0x88, 0xee, 0xbb,
	0x18, 0xf4, 0xdd, 0x01, 0x33, 0x8e, 0xb1, 0xdb, 0xa8, 0x67, 0xc1, 0x46, 0x97, 0xaf, 0xe7, 0x47,
	0xe0, 0xd5, 0xae, 0xb3, 0x72, 0x23, 0xe4, 0x93, 0x2d, 0xe3, 0xc0, 0x04, 0x99, 0xab, 0xf5, 0x7d,
	0x78, 0x24, 0x44, 0xa4, 0xe1, 0x61, 0x4e, 0xc7, 0x32, 0x6c, 0x7e, 0xc9, 0x0e, 0x77, 0x6d, 0x4d,
	0xd7, 0xde, 0xda, 0x8d, 0x11, 0x4f, 0x63, 0xc8, 0x30, 0xfc, 0x06, 0xa9, 0xc5, 0x17, 0x40, 0xf1,
	0xfa, 0xc4, 0xcc, 0x64, 0x2f, 0xb4, 0x9a, 0x9b, 0x35, 0x62, 0x25, 0xa0, 0x02, 0xa7, 0x51, 0x1b,
	0x1a, 0x9f, 0xb5, 0x66, 0xc6, 0x59, 0xea, 0x12, 0x00, 0xd6, 0x86, 0xe9, 0xe2, 0x68, 0x22, 0x70,
	0xba, 0x2a, 0x76, 0x7c, 0x31, 0xbe, 0x1f, 0x34, 0x2c, 0x26, 0x36, 0x09, 0xfd, 0x6b, 0xf7, 0xec,
	0x20, 0x65, 0xce, 0xb2, 0x8f, 0xf9, 0x14, 0x3d, 0xff, 0xcd, 0x08, 0x9d, 0x0b, 0x56, 0x8a, 0x5d,
	0xf2, 0xfb, 0x4a, 0xa5, 0x52, 0x29, 0x55, 0xbc, 0x83, 0x7f, 0x79, 0x3e, 0xf0, 0xb8, 0x89, 0xca,
	0x87, 0x58, 0xe6, 0xfe, 0x82, 0x94, 0xbd, 0x5f, 0xed, 0xb0, 0xe5, 0x03, 0x5c, 0x91, 0x2b, 0x6f,
	0x05, 0x41, 0xef, 0xc2, 0x6a, 0x3b, 0x0c, 0x0d, 0x50, 0x38, 0xdf, 0x37, 0x96, 0x84, 0x0f, 0x3f,
	0x53, 0x7a, 0x92, 0xd0, 0x45, 0xa3, 0x21, 0xd9, 0x39, 0x69, 0x90, 0x9c, 0xa6, 0x71, 0xad, 0x27,
	0x85, 0x6e, 0xd1, 0xd2, 0x74, 0xcb, 0x80, 0x1e, 0xa2, 0x42, 0x2e, 0xd3, 0xb9, 0x98, 0x1d, 0xcf,
	0x07, 0xac, 0x4b, 0x60, 0x8b, 0x0a, 0xaa, 0x15, 0x3c, 0x49, 0xdc, 0x19, 0x54, 0xeb, 0xa1, 0x16,
}
