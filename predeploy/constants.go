package predeploy

import "github.com/starknet-devnet/devnetgo/core/felt"

// Fixed on-chain constants, bit-exact per SPEC_FULL.md §6, carried over
// from original_source/crates/starknet/src/constants.rs.
var (
	ERC20ContractAddress = mustHex("0x049D36570D4E46F48E99674BD3FCC84644DDD6B96F7C741B1562B82F9E004DC7")
	ERC20ClassHash        = mustHex("0x06A22BF63C7BC07EFFA39A25DFBD21523D211DB0100A0AFD054D172B81840EAF")

	UDCContractAddress = mustHex("0x041A78E741E5AF2FEC34B695679BC6891742439F7AFB8484ECD7766661AD02BF")
	UDCClassHash        = mustHex("0x07B3E05F48F0C69E4A65CE5E076A66271A527AFF2C34CE1083EC6E1526997A69")

	// Cairo1AccountClassHash is wired as the Sierra class hash rather than
	// the CASM hash (SPEC_FULL.md §9, Open Question (c)): core.Cairo1Class
	// in the rpc read path (rpc/chain.go, kept from the teacher) is keyed
	// by Sierra class hash throughout, so that's the value that makes
	// starknet_getClass/getClassAt consistent for Cairo-1 accounts.
	Cairo0AccountClassHash = mustHex("0x04D07E40E93398ED3C76981E72DD1FD22557A78CE36C0515F679E27F0BB5BC5F")
	Cairo1AccountClassHash = mustHex("0x02B513521D389C0477B3A9A90A1FF4822BCD957A9C8BA0DFC49918B59A19CF8A")

	ChargeableAccountPublicKey  = mustHex("0x04C37AB4F0994879337BFD4EAD0800776DB57DA382B8ED8EFAA478C5D3B942A4")
	ChargeableAccountPrivateKey = mustHex("0x05FB2959E3011A873A7160F5BB32B0ECE")
	ChargeableAccountAddress    = mustHex("0x01CAF2DF5ED5DDE1AE3FAEF4ACD72522AC3CB16E23F6DC4C7F9FAED67124C511")
)

func mustHex(s string) *felt.Felt {
	f, err := new(felt.Felt).SetHex(s)
	if err != nil {
		panic(err)
	}
	return f
}
